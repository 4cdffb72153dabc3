package cli

import (
	"context"
	"io"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/internal/presentation/tui"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/ranking"
	"github.com/aretw0/algotrace/pkg/registry"
)

// Run executes the configured run and prints its report.
func Run(ctx context.Context, opts Options, w io.Writer) (*algotrace.Run, error) {
	env, err := Setup(opts, nil)
	if err != nil {
		return nil, err
	}
	defer env.Close()

	run, err := newRun(ctx, env)
	if err != nil {
		return nil, err
	}
	return run, NewPrinter(w, opts).Markdown(tui.RunReport(run), run)
}

// Resume re-executes a stored run and prints its report.
func Resume(ctx context.Context, opts Options, runID string, w io.Writer) (*algotrace.Run, error) {
	env, err := Setup(opts, nil)
	if err != nil {
		return nil, err
	}
	defer env.Close()

	run, err := env.Engine.Resume(ctx, runID)
	if err != nil {
		return nil, err
	}
	return run, NewPrinter(w, opts).Markdown(tui.RunReport(run), run)
}

// Rank re-executes a stored run and prints its ranking under metric.
// An empty metric uses the run's own setting.
func Rank(ctx context.Context, opts Options, runID, metric string, w io.Writer) ([]domain.RankEntry, error) {
	env, err := Setup(opts, nil)
	if err != nil {
		return nil, err
	}
	defer env.Close()

	run, err := env.Engine.Resume(ctx, runID)
	if err != nil {
		return nil, err
	}
	m := run.Descriptor.Settings.Metric
	if metric != "" {
		if m, err = ranking.ParseMetric(metric); err != nil {
			return nil, err
		}
	}
	entries := env.Engine.Rank(run.Results, m)
	out := struct {
		Metric  domain.Metric      `json:"metric"`
		Ranking []domain.RankEntry `json:"ranking"`
	}{m, entries}
	return entries, NewPrinter(w, opts).Markdown(tui.RankedReport(run, m, entries), out)
}

// Catalog prints the registered algorithms, optionally restricted to one family.
func Catalog(opts Options, family string, w io.Writer) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	algorithms := env.Engine.Catalog()
	if family != "" {
		algorithms = env.Engine.Registry().Family(registry.Family(family))
	}
	return NewPrinter(w, opts).Markdown(tui.CatalogReport(algorithms), algorithms)
}

func newRun(ctx context.Context, env *Environment) (*algotrace.Run, error) {
	cfg := env.Config
	return env.Engine.Run(ctx, algotrace.RunRequest{
		Input:      cfg.Input,
		Algorithms: selection(env),
		Settings:   cfg.Settings,
	})
}

// selection returns the configured algorithms, or every algorithm that
// accepts the configured input kind.
func selection(env *Environment) []string {
	if len(env.Config.Algorithms) > 0 {
		return env.Config.Algorithms
	}
	var ids []string
	for _, a := range env.Engine.Catalog() {
		if a.InputKind == env.Config.Input.Kind {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
