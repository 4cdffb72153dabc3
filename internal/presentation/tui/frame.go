package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/playback"
	"github.com/muesli/termenv"
)

var highlightColors = map[domain.HighlightType]string{
	domain.HighlightCompare: "#facc15",
	domain.HighlightSwap:    "#f87171",
	domain.HighlightPivot:   "#4ade80",
	domain.HighlightMark:    "#60a5fa",
}

// Markers drawn under highlighted array cells, strongest first.
var highlightMarkers = []struct {
	typ    domain.HighlightType
	marker string
}{
	{domain.HighlightSwap, "*"},
	{domain.HighlightCompare, "^"},
	{domain.HighlightPivot, "P"},
	{domain.HighlightMark, "|"},
}

// Painter draws frames as plain text, colored for the given profile.
type Painter struct {
	profile termenv.Profile
}

// NewPainter creates a Painter. termenv.Ascii disables colors.
func NewPainter(p termenv.Profile) *Painter {
	return &Painter{profile: p}
}

func (p *Painter) paint(s, color string) string {
	if color == "" {
		return s
	}
	return p.profile.String(s).Foreground(p.profile.Color(color)).String()
}

// Frame renders one frame: a header line followed by its payload.
func (p *Painter) Frame(f domain.Frame) string {
	var sb strings.Builder
	header := fmt.Sprintf("#%d", f.Index)
	if f.Note != "" {
		header += " " + f.Note
	}
	if f.Terminal {
		header += " (end)"
	}
	sb.WriteString(p.profile.String(header).Bold().String())
	sb.WriteString("\n")

	switch f.Kind {
	case domain.FrameArray:
		if f.Array != nil {
			p.array(&sb, f.Array)
		}
	case domain.FrameGraph:
		if f.Graph != nil {
			p.graph(&sb, f.Graph)
		}
	case domain.FrameMatrix:
		if f.Matrix != nil {
			p.matrix(&sb, f.Matrix)
		}
	}
	return sb.String()
}

func (p *Painter) array(sb *strings.Builder, a *domain.ArrayFrame) {
	width := 1
	for _, v := range a.Values {
		width = max(width, len(strconv.Itoa(v)))
	}
	byIndex := make(map[int][]domain.HighlightType, len(a.Highlights))
	for _, h := range a.Highlights {
		byIndex[h.Index] = append(byIndex[h.Index], h.Type)
	}

	cells := make([]string, len(a.Values))
	markers := make([]string, len(a.Values))
	for i, v := range a.Values {
		text := fmt.Sprintf("%*d", width, v)
		marker, color := strings.Repeat(" ", width), ""
		for _, m := range highlightMarkers {
			if containsType(byIndex[i], m.typ) {
				marker = fmt.Sprintf("%*s", width, m.marker)
				color = highlightColors[m.typ]
				break
			}
		}
		cells[i] = p.paint(text, color)
		markers[i] = marker
	}
	sb.WriteString(strings.Join(cells, " "))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(strings.Join(markers, " "), " "))
	sb.WriteString("\n")
}

func (p *Painter) graph(sb *strings.Builder, g *domain.GraphFrame) {
	fmt.Fprintf(sb, "selected: %s\n", p.edges(g.SelectedEdges, highlightColors[domain.HighlightPivot]))
	if g.CurrentEdge != nil {
		fmt.Fprintf(sb, "current:  %s\n", p.edges([]domain.Edge{*g.CurrentEdge}, highlightColors[domain.HighlightCompare]))
	}
	fmt.Fprintf(sb, "visited:  %v\n", g.Visited)
	if len(g.Distances) > 0 {
		parts := make([]string, len(g.Distances))
		for i, d := range g.Distances {
			parts[i] = fmt.Sprintf("%d=%s", i, distance(d))
		}
		fmt.Fprintf(sb, "dist:     %s\n", strings.Join(parts, " "))
	}
}

func (p *Painter) edges(edges []domain.Edge, color string) string {
	if len(edges) == 0 {
		return "none"
	}
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = p.paint(fmt.Sprintf("%d-%d(%d)", e.U, e.V, e.Weight), color)
	}
	return strings.Join(parts, " ")
}

func (p *Painter) matrix(sb *strings.Builder, m *domain.MatrixFrame) {
	width := 1
	for _, row := range m.Cells {
		for _, v := range row {
			width = max(width, len([]rune(distance(v))))
		}
	}
	for i, row := range m.Cells {
		cells := make([]string, len(row))
		for j, v := range row {
			text := distance(v)
			text = strings.Repeat(" ", width-len([]rune(text))) + text
			if m.Updated != nil && m.Updated.I == i && m.Updated.J == j {
				text = p.paint(text, highlightColors[domain.HighlightSwap])
			}
			cells[j] = text
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
}

// Playback renders every track of a snapshot at its current frame.
func (p *Painter) Playback(snap playback.Snapshot, traces map[string]domain.Trace) string {
	var sb strings.Builder
	if snap.Sync != nil {
		state := "paused"
		if snap.Sync.IsPlaying {
			state = "playing"
		}
		fmt.Fprintf(&sb, "mode %s, %s, %s per frame\n\n", snap.Mode, state, snap.Sync.Speed)
	} else {
		fmt.Fprintf(&sb, "mode %s\n\n", snap.Mode)
	}
	for _, tr := range snap.Tracks {
		fmt.Fprintf(&sb, "%s [%d/%d] %s\n", p.profile.String(tr.TrackID).Bold(), tr.CurrentFrameIndex+1, tr.Length, tr.Status)
		trace := traces[tr.TrackID]
		if tr.CurrentFrameIndex < len(trace) {
			sb.WriteString(p.Frame(trace[tr.CurrentFrameIndex]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Traces indexes result traces by algorithm id.
func Traces(results []domain.Result) map[string]domain.Trace {
	out := make(map[string]domain.Trace, len(results))
	for _, r := range results {
		out[r.AlgorithmID] = r.Trace
	}
	return out
}

func distance(d int) string {
	if d >= domain.Infinity {
		return "∞"
	}
	return strconv.Itoa(d)
}

func containsType(types []domain.HighlightType, t domain.HighlightType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
