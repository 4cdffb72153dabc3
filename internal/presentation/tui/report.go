package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/registry"
)

// RunReport renders a run as markdown: summary, per-algorithm results and the ranking.
func RunReport(run *algotrace.Run) string {
	return RankedReport(run, run.Descriptor.Settings.Metric, run.Ranking)
}

// RankedReport is RunReport with an explicit ranking, e.g. under another metric.
func RankedReport(run *algotrace.Run, metric domain.Metric, entries []domain.RankEntry) string {
	var sb strings.Builder
	d := run.Descriptor

	fmt.Fprintf(&sb, "# Run %s\n\n", d.ID)
	fmt.Fprintf(&sb, "- **Input**: %s\n", describeInput(d))
	fmt.Fprintf(&sb, "- **Status**: %s\n", d.Status)
	fmt.Fprintf(&sb, "- **Metric**: %s\n\n", metric)

	sb.WriteString("## Results\n\n")
	sb.WriteString("| Algorithm | Status | Steps | Comparisons | Swaps | Time (ms) |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	var failed []domain.Result
	for _, r := range run.Results {
		fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s | %.3f |\n",
			r.AlgorithmID, r.Status, r.Stats.Steps,
			optional(r.Stats.Comparisons), optional(r.Stats.Swaps), r.GenerationTimeMs)
		if r.Status == domain.StatusError {
			failed = append(failed, r)
		}
	}

	sb.WriteString("\n## Ranking\n\n")
	if len(entries) == 0 {
		sb.WriteString("No finished algorithms.\n")
	} else {
		fmt.Fprintf(&sb, "| # | Algorithm | %s |\n", metric)
		sb.WriteString("|---|---|---|\n")
		for _, e := range entries {
			value := "n/a"
			if e.Defined {
				value = formatMetric(metric, e.MetricValue)
			}
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", e.Place, e.AlgorithmID, value)
		}
	}

	if len(failed) > 0 {
		sb.WriteString("\n## Errors\n\n")
		for _, r := range failed {
			fmt.Fprintf(&sb, "- `%s`: %s\n", r.AlgorithmID, r.Error)
		}
	}
	return sb.String()
}

// CatalogReport renders the algorithm catalog as a markdown table.
func CatalogReport(algorithms []registry.Algorithm) string {
	var sb strings.Builder
	sb.WriteString("| ID | Name | Family | Input |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, a := range algorithms {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", a.ID, a.Name, a.Family, a.InputKind)
	}
	return sb.String()
}

func describeInput(d domain.RunDescriptor) string {
	switch d.Input.Kind {
	case domain.InputArray:
		if d.Input.Array == nil {
			break
		}
		s := fmt.Sprintf("array of %d values (seed %d)", len(d.Input.Array.Values), d.Seed)
		if d.Input.Array.Target != nil {
			s += fmt.Sprintf(", target %d", *d.Input.Array.Target)
		}
		return s
	case domain.InputGraph:
		if d.Input.Graph == nil {
			break
		}
		return fmt.Sprintf("graph with %d vertices and %d edges (seed %d)",
			d.Input.Graph.VertexCount, len(d.Input.Graph.Edges), d.Seed)
	}
	return string(d.Input.Kind)
}

func optional(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func formatMetric(metric domain.Metric, v float64) string {
	if metric == domain.MetricTime {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
