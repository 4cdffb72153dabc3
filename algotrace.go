package algotrace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/algotrace/pkg/adapters/memory"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/executor"
	"github.com/aretw0/algotrace/pkg/observability"
	"github.com/aretw0/algotrace/pkg/playback"
	"github.com/aretw0/algotrace/pkg/ports"
	"github.com/aretw0/algotrace/pkg/ranking"
	"github.com/aretw0/algotrace/pkg/registry"
	"github.com/aretw0/algotrace/pkg/seeded"
	"github.com/aretw0/algotrace/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the high-level entry point for the algotrace library.
// It wires the catalog, executor, ranking and run persistence together.
type Engine struct {
	registry *registry.Registry
	executor *executor.Executor
	sessions *session.Manager
	store    ports.DescriptorStore
	locker   ports.DistributedLocker
	metrics  *observability.Metrics
	promReg  prometheus.Registerer
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the built-in algorithm catalog.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStore sets where run descriptors are persisted (default: in memory).
func WithStore(store ports.DescriptorStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker guards descriptor updates across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithMetrics registers the executor metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.promReg = reg
	}
}

// WithClock overrides the time source used for timing and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.registry == nil {
		eng.registry = registry.Default()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.now == nil {
		eng.now = time.Now
	}

	hooks := []domain.LifecycleHooks{eng.hooks}
	if eng.promReg != nil {
		m, err := observability.NewMetrics(eng.promReg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		eng.metrics = m
		hooks = append(hooks, m.Hooks())
	}
	hooks = append(hooks, observability.LogHooks(eng.logger))

	eng.executor = executor.New(eng.registry,
		executor.WithLogger(eng.logger),
		executor.WithLifecycleHooks(observability.ChainHooks(hooks...)),
		executor.WithClock(eng.now),
	)

	sessionOpts := []session.Option{
		session.WithLogger(eng.logger),
		session.WithClock(eng.now),
	}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	return eng, nil
}

// RunRequest describes a run to execute.
type RunRequest struct {
	Input      domain.InputConfig `json:"input"`
	Algorithms []string           `json:"algorithms"`
	Settings   domain.Settings    `json:"settings"`
}

// Run is the outcome of an executed run.
type Run struct {
	Descriptor domain.RunDescriptor `json:"descriptor"`
	Results    []domain.Result      `json:"results"`
	Ranking    []domain.RankEntry   `json:"ranking"`
}

// Result returns the result for an algorithm id.
func (r *Run) Result(algorithmID string) (domain.Result, bool) {
	for _, res := range r.Results {
		if res.AlgorithmID == algorithmID {
			return res, true
		}
	}
	return domain.Result{}, false
}

// Catalog lists the registered algorithms in registration order.
func (e *Engine) Catalog() []registry.Algorithm {
	return e.registry.List()
}

// Registry returns the catalog backing the engine.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Sessions returns the run descriptor manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Metrics returns the registered collectors, or nil without WithMetrics.
func (e *Engine) Metrics() *observability.Metrics {
	return e.metrics
}

// BuildInput derives the shared input from its configuration.
func (e *Engine) BuildInput(cfg domain.InputConfig) (domain.Input, error) {
	return seeded.BuildInput(cfg)
}

// Run builds the input, records a descriptor, executes every selected
// algorithm and ranks the finished ones.
// Algorithm failures are reported in the results; only input and
// persistence problems are returned as errors.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*Run, error) {
	settings := withDefaults(req.Settings)
	if _, err := ranking.ParseMetric(string(settings.Metric)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	switch settings.Mode {
	case domain.ModeSynced, domain.ModeIndependent:
	default:
		return nil, fmt.Errorf("%w: unknown playback mode %q", domain.ErrConfig, settings.Mode)
	}

	input, err := e.BuildInput(req.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to build input: %w", err)
	}

	d := &domain.RunDescriptor{
		Seed:        req.Input.Seed,
		Input:       input,
		InputConfig: req.Input,
		Algorithms:  append([]string(nil), req.Algorithms...),
		Settings:    settings,
	}
	if err := e.sessions.Record(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return e.execute(ctx, *d)
}

// Resume re-executes a persisted run from its descriptor.
// Traces are identical to the original run's.
func (e *Engine) Resume(ctx context.Context, runID string) (*Run, error) {
	d, err := e.sessions.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	return e.execute(ctx, *d)
}

func (e *Engine) execute(ctx context.Context, d domain.RunDescriptor) (*Run, error) {
	results := e.executor.Execute(executor.WithRunID(ctx, d.ID), d.Algorithms, d.Input, d.Settings)

	status := domain.RunStatusOf(results)
	if d.Status != status {
		updated, err := e.sessions.Update(ctx, d.ID, func(x *domain.RunDescriptor) error {
			x.Status = status
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			e.logger.Warn("failed to update run status", "run_id", d.ID, "err", err)
		} else {
			d = *updated
		}
	}

	return &Run{
		Descriptor: d,
		Results:    results,
		Ranking:    ranking.Compute(results, d.Settings.Metric),
	}, nil
}

// Rank orders finished results by metric.
func (e *Engine) Rank(results []domain.Result, metric domain.Metric) []domain.RankEntry {
	return ranking.Compute(results, metric)
}

// NewPlayer creates a playback scheduler over the results' traces.
func (e *Engine) NewPlayer(results []domain.Result, opts ...playback.Option) *playback.Scheduler {
	base := []playback.Option{playback.WithLogger(e.logger)}
	return playback.New(playback.TracksFrom(results), append(base, opts...)...)
}

func withDefaults(s domain.Settings) domain.Settings {
	def := domain.DefaultSettings()
	if s.Metric == "" {
		s.Metric = def.Metric
	} else if m, err := ranking.ParseMetric(string(s.Metric)); err == nil {
		s.Metric = m
	}
	if s.Mode == "" {
		s.Mode = def.Mode
	}
	if s.SpeedMs <= 0 {
		s.SpeedMs = def.SpeedMs
	}
	return s
}
