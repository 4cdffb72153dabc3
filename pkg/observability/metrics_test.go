package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()
	hooks.OnGenerateFinish(ctx, &domain.GenerateEvent{AlgorithmID: "prim", Status: domain.StatusFinished, Elapsed: time.Millisecond, Steps: 12})
	hooks.OnGenerateFinish(ctx, &domain.GenerateEvent{AlgorithmID: "prim", Status: domain.StatusFinished, Elapsed: time.Millisecond, Steps: 12})
	hooks.OnGenerateFinish(ctx, &domain.GenerateEvent{AlgorithmID: "kruskal", Status: domain.StatusError})
	hooks.OnRunFinish(ctx, &domain.RunEvent{Status: domain.RunPartial})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Generations.WithLabelValues("prim", "finished")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("kruskal", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("partial")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestNewMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	b, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	b.Runs.WithLabelValues("completed").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Runs.WithLabelValues("completed")))
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	m.Runs.WithLabelValues("failed").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failed")))
}

func TestChainHooks(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnRunStart:  func(context.Context, *domain.RunEvent) { calls = append(calls, "second") },
		OnRunFinish: func(context.Context, *domain.RunEvent) { calls = append(calls, "finish") },
	}

	h := observability.ChainHooks(first, domain.LifecycleHooks{}, second)
	h.OnRunStart(context.Background(), &domain.RunEvent{})
	h.OnRunFinish(context.Background(), &domain.RunEvent{})
	assert.Nil(t, h.OnGenerateStart)
	assert.Equal(t, []string{"first", "second", "finish"}, calls)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := observability.LogHooks(logger)

	h.OnGenerateFinish(context.Background(), &domain.GenerateEvent{AlgorithmID: "dijkstra", Status: domain.StatusError, Err: "boom"})
	assert.Contains(t, buf.String(), "generate_failed")
	assert.Contains(t, buf.String(), "algorithm=dijkstra")
	assert.Contains(t, buf.String(), "err=boom")
}
