package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/algotrace/internal/logging"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/registry"
)

// Catalog resolves algorithm ids. *registry.Registry satisfies it.
type Catalog interface {
	Lookup(id string) (registry.Algorithm, error)
}

// Executor runs trace generators and normalizes their output into Results.
type Executor struct {
	catalog Catalog
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Executor.
type Option func(*Executor)

// WithLogger configures a logger for the Executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for event timestamps and timing.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// New creates an Executor over the given catalog.
func New(catalog Catalog, opts ...Option) *Executor {
	e := &Executor{
		catalog: catalog,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type runIDKey struct{}

// WithRunID returns a context carrying the run id reported in lifecycle events.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run id set by WithRunID, if any.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Execute runs every selected algorithm against input, in selection order.
// It never returns fewer results than selected ids and never fails as a whole.
func (e *Executor) Execute(ctx context.Context, selection []string, input domain.Input, settings domain.Settings) []domain.Result {
	runID := RunIDFromContext(ctx)
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventRunStart, RunID: runID},
			Algorithms: append([]string(nil), selection...),
			InputKind:  input.Kind,
		})
	}
	e.logger.Debug("executing selection",
		"run_id", runID,
		"algorithms", len(selection),
		"metric", settings.Metric,
	)

	results := make([]domain.Result, 0, len(selection))
	for _, id := range selection {
		results = append(results, *e.executeOne(ctx, runID, id, input))
	}

	if e.hooks.OnRunFinish != nil {
		e.hooks.OnRunFinish(ctx, &domain.RunEvent{
			EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventRunFinish, RunID: runID},
			Algorithms: append([]string(nil), selection...),
			InputKind:  input.Kind,
			Status:     domain.RunStatusOf(results),
		})
	}
	return results
}

func (e *Executor) executeOne(ctx context.Context, runID, id string, input domain.Input) *domain.Result {
	res := domain.NewResult(id)
	event := &domain.GenerateEvent{
		EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventGenerateStart, RunID: runID},
		AlgorithmID: id,
	}
	if e.hooks.OnGenerateStart != nil {
		e.hooks.OnGenerateStart(ctx, event)
	}

	trace, family, elapsed, err := e.generate(ctx, id, input)
	if err == nil {
		err = res.Finish(trace, elapsed, statsOf(family, trace))
	}
	if err != nil {
		// res is still running here, so Fail cannot report ErrResultFrozen.
		_ = res.Fail(err, input, elapsed)
		e.logger.Warn("algorithm failed",
			"run_id", runID,
			"algorithm", id,
			"err", err,
		)
	}

	if e.hooks.OnGenerateFinish != nil {
		e.hooks.OnGenerateFinish(ctx, &domain.GenerateEvent{
			EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventGenerateFinish, RunID: runID},
			AlgorithmID: id,
			Status:      res.Status,
			Elapsed:     elapsed,
			Steps:       res.Stats.Steps,
			Err:         res.Error,
		})
	}
	return res
}

// generate resolves id and invokes its generator. Only the generator call is timed.
func (e *Executor) generate(ctx context.Context, id string, input domain.Input) (trace domain.Trace, family registry.Family, elapsed time.Duration, err error) {
	if err := ctx.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("%w: %s: %w", domain.ErrGeneration, id, err)
	}
	algo, err := e.catalog.Lookup(id)
	if err != nil {
		return nil, "", 0, err
	}
	if algo.Generate == nil {
		return nil, algo.Family, 0, fmt.Errorf("%w: %s has no generator", domain.ErrConfig, id)
	}

	in := input.Clone()
	start := e.now()
	defer func() {
		elapsed = e.now().Sub(start)
		if r := recover(); r != nil {
			trace = nil
			err = fmt.Errorf("%w: %s: panic: %v", domain.ErrGeneration, id, r)
		}
	}()

	trace, err = algo.Generate(in)
	if err != nil {
		return nil, algo.Family, 0, fmt.Errorf("%w: %s: %w", domain.ErrGeneration, id, err)
	}
	if len(trace) == 0 {
		return nil, algo.Family, 0, fmt.Errorf("%w: %s produced an empty trace", domain.ErrGeneration, id)
	}
	return trace, algo.Family, 0, nil
}

// statsOf derives Stats from a trace. Comparisons and swaps count the frames
// carrying at least one compare or swap highlight, and are only defined for
// the sorting and searching families.
func statsOf(family registry.Family, trace domain.Trace) domain.Stats {
	stats := domain.Stats{Steps: len(trace)}
	if family != registry.FamilySorting && family != registry.FamilySearching {
		return stats
	}
	comparisons, swaps := 0, 0
	for _, f := range trace {
		if f.Array == nil {
			continue
		}
		if hasHighlight(f.Array.Highlights, domain.HighlightCompare) {
			comparisons++
		}
		if hasHighlight(f.Array.Highlights, domain.HighlightSwap) {
			swaps++
		}
	}
	stats.Comparisons = &comparisons
	stats.Swaps = &swaps
	return stats
}

func hasHighlight(hs []domain.Highlight, t domain.HighlightType) bool {
	for _, h := range hs {
		if h.Type == t {
			return true
		}
	}
	return false
}
