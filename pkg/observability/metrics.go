package observability

import (
	"context"
	"errors"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for trace generation.
type Metrics struct {
	Runs        *prometheus.CounterVec
	Generations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Steps       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered on reg are reused, so several engines may share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algotrace_runs_total",
				Help: "Total number of executed runs by outcome",
			},
			[]string{"status"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algotrace_generations_total",
				Help: "Total number of trace generations",
			},
			[]string{"algorithm", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algotrace_generation_duration_seconds",
				Help:    "Duration of trace generation",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"algorithm"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algotrace_trace_frames",
				Help:    "Number of frames per generated trace",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"algorithm"},
		),
	}

	var err error
	if m.Runs, err = register(reg, m.Runs); err != nil {
		return nil, err
	}
	if m.Generations, err = register(reg, m.Generations); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, m.Duration); err != nil {
		return nil, err
	}
	if m.Steps, err = register(reg, m.Steps); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if reg == nil {
		return c, nil
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenerateFinish: func(_ context.Context, e *domain.GenerateEvent) {
			m.Generations.WithLabelValues(e.AlgorithmID, string(e.Status)).Inc()
			m.Duration.WithLabelValues(e.AlgorithmID).Observe(e.Elapsed.Seconds())
			m.Steps.WithLabelValues(e.AlgorithmID).Observe(float64(e.Steps))
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(string(e.Status)).Inc()
		},
	}
}
