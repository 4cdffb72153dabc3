package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/algotrace/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of one graph frame.
// Vertices are circles labelled with their id (and tentative distance for
// shortest-path frames). Edges are undirected and labelled with their weight.
// Styling:
// - Visited vertices: visited class
// - Selected edges: thick stroke
// - Current edge: highlighted stroke
func GenerateMermaid(f *domain.GraphFrame) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if f == nil {
		return sb.String()
	}

	for v := 0; v < f.VertexCount; v++ {
		label := fmt.Sprint(v)
		if v < len(f.Distances) {
			label = fmt.Sprintf("%d <br/> d=%s", v, formatDistance(f.Distances[v]))
		}
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", vertexID(v), label))
	}

	var selected, current []int
	for i, e := range f.Edges {
		sb.WriteString(fmt.Sprintf("    %s ---|%d| %s\n", vertexID(e.U), e.Weight, vertexID(e.V)))
		if containsEdge(f.SelectedEdges, e) {
			selected = append(selected, i)
		}
		if f.CurrentEdge != nil && f.CurrentEdge.SameEndpoints(e) && f.CurrentEdge.Weight == e.Weight {
			current = append(current, i)
		}
	}

	if len(f.Visited) == 0 && len(selected) == 0 && len(current) == 0 {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Black text keeps labels readable on light and dark themes.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	for _, v := range f.Visited {
		sb.WriteString(fmt.Sprintf("    class %s visited;\n", vertexID(v)))
	}
	if len(selected) > 0 {
		sb.WriteString(fmt.Sprintf("    linkStyle %s stroke:#01579b,stroke-width:4px;\n", joinInts(selected)))
	}
	if len(current) > 0 {
		sb.WriteString(fmt.Sprintf("    linkStyle %s stroke:#fbc02d,stroke-width:4px;\n", joinInts(current)))
	}
	return sb.String()
}

func vertexID(v int) string {
	return fmt.Sprintf("v%d", v)
}

func formatDistance(d int) string {
	if d >= domain.Infinity {
		return "∞"
	}
	return fmt.Sprint(d)
}

func containsEdge(edges []domain.Edge, e domain.Edge) bool {
	for _, s := range edges {
		if s.SameEndpoints(e) && s.Weight == e.Weight {
			return true
		}
	}
	return false
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
