package algotrace_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/pkg/adapters/memory"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/playback"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrayRequest(algorithms ...string) algotrace.RunRequest {
	return algotrace.RunRequest{
		Input:      domain.InputConfig{Kind: domain.InputArray, Size: 5, Seed: 42},
		Algorithms: algorithms,
	}
}

func TestEngine_Run(t *testing.T) {
	eng, err := algotrace.New()
	require.NoError(t, err)

	run, err := eng.Run(context.Background(), arrayRequest("bubble-sort", "quick-sort", "binary-search"))
	require.NoError(t, err)

	require.Len(t, run.Results, 3)
	for _, r := range run.Results {
		assert.Equal(t, domain.StatusFinished, r.Status, r.AlgorithmID)
	}
	bubble, ok := run.Result("bubble-sort")
	require.True(t, ok)
	assert.Equal(t, []int{60, 79, 83, 89, 96}, bubble.FinalState.Values)
	require.NotNil(t, bubble.Stats.Comparisons)
	assert.Equal(t, 10, *bubble.Stats.Comparisons)
	assert.Equal(t, 8, *bubble.Stats.Swaps)
	assert.Equal(t, 24, bubble.Stats.Steps)

	search, ok := run.Result("binary-search")
	require.True(t, ok)
	assert.Equal(t, "found at 2", search.Trace[len(search.Trace)-1].Note)

	assert.NotEmpty(t, run.Descriptor.ID)
	assert.Equal(t, domain.RunCompleted, run.Descriptor.Status)
	assert.Equal(t, domain.MetricTime, run.Descriptor.Settings.Metric, "settings are defaulted")
	assert.Len(t, run.Ranking, 3)

	stored, err := eng.Sessions().Load(context.Background(), run.Descriptor.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, stored.Status)
	assert.Equal(t, []string{"bubble-sort", "quick-sort", "binary-search"}, stored.Algorithms)
}

func TestEngine_Run_PartialFailure(t *testing.T) {
	eng, err := algotrace.New()
	require.NoError(t, err)

	run, err := eng.Run(context.Background(), arrayRequest("merge-sort", "no-such-sort", "prim"))
	require.NoError(t, err)

	statuses := map[string]domain.ResultStatus{}
	for _, r := range run.Results {
		statuses[r.AlgorithmID] = r.Status
	}
	assert.Equal(t, map[string]domain.ResultStatus{
		"merge-sort":   domain.StatusFinished,
		"no-such-sort": domain.StatusError,
		"prim":         domain.StatusError,
	}, statuses)
	assert.Equal(t, domain.RunPartial, run.Descriptor.Status)
	require.Len(t, run.Ranking, 1)
	assert.Equal(t, "merge-sort", run.Ranking[0].AlgorithmID)
}

func TestEngine_Run_Rejects(t *testing.T) {
	eng, err := algotrace.New()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = eng.Run(ctx, algotrace.RunRequest{Input: domain.InputConfig{Kind: "tree"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := arrayRequest("bubble-sort")
	req.Settings.Metric = "elegance"
	_, err = eng.Run(ctx, req)
	assert.ErrorIs(t, err, domain.ErrConfig)

	req = arrayRequest("bubble-sort")
	req.Settings.Mode = "shuffled"
	_, err = eng.Run(ctx, req)
	assert.ErrorIs(t, err, domain.ErrConfig)

	req = arrayRequest("bubble-sort")
	req.Input.Size = 600
	_, err = eng.Run(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ids, err := eng.Sessions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "rejected runs are not recorded")
}

func TestEngine_Resume_ReproducesTraces(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	first, err := algotrace.New(algotrace.WithStore(store))
	require.NoError(t, err)
	run, err := first.Run(ctx, algotrace.RunRequest{
		Input:      domain.InputConfig{Kind: domain.InputGraph, VertexCount: 6, Density: 0.4, Seed: 11},
		Algorithms: []string{"prim", "kruskal", "dijkstra", "floyd-warshall"},
	})
	require.NoError(t, err)

	// A fresh engine over the same store sees the run.
	second, err := algotrace.New(algotrace.WithStore(store))
	require.NoError(t, err)
	resumed, err := second.Resume(ctx, run.Descriptor.ID)
	require.NoError(t, err)

	require.Len(t, resumed.Results, len(run.Results))
	for i := range run.Results {
		assert.Equal(t, run.Results[i].Trace, resumed.Results[i].Trace, run.Results[i].AlgorithmID)
	}

	_, err = second.Resume(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng, err := algotrace.New(algotrace.WithMetrics(reg))
	require.NoError(t, err)
	require.NotNil(t, eng.Metrics())

	_, err = eng.Run(context.Background(), arrayRequest("heap-sort", "nope"))
	require.NoError(t, err)

	m := eng.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("heap-sort", string(domain.StatusFinished))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("nope", string(domain.StatusError))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(string(domain.RunPartial))))
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var events []domain.EventType
	hooks := domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) { events = append(events, e.Type) },
		OnGenerateFinish: func(_ context.Context, e *domain.GenerateEvent) {
			events = append(events, e.Type)
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) { events = append(events, e.Type) },
	}
	eng, err := algotrace.New(algotrace.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), arrayRequest("insertion-sort"))
	require.NoError(t, err)
	assert.Equal(t, []domain.EventType{domain.EventRunStart, domain.EventGenerateFinish, domain.EventRunFinish}, events)
}

func TestEngine_Clock(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	eng, err := algotrace.New(algotrace.WithClock(func() time.Time { return stamp }))
	require.NoError(t, err)

	run, err := eng.Run(context.Background(), arrayRequest("selection-sort"))
	require.NoError(t, err)
	assert.Equal(t, stamp, run.Descriptor.CreatedAt)
	assert.Zero(t, run.Results[0].GenerationTimeMs)
}

func TestEngine_NewPlayer(t *testing.T) {
	eng, err := algotrace.New()
	require.NoError(t, err)

	run, err := eng.Run(context.Background(), arrayRequest("bubble-sort", "binary-search"))
	require.NoError(t, err)

	clock := playback.NewManualClock()
	player := eng.NewPlayer(run.Results, playback.WithClock(clock), playback.WithSpeed(10*time.Millisecond))
	defer player.Close()

	player.Play("")
	clock.Advance(time.Second)

	assert.True(t, player.Finished())
	search, ok := player.State("binary-search")
	require.True(t, ok)
	assert.Equal(t, 2, search.CurrentFrameIndex)
	bubble, _ := player.State("bubble-sort")
	assert.Equal(t, 23, bubble.CurrentFrameIndex)
}

func TestEngine_Catalog(t *testing.T) {
	eng, err := algotrace.New()
	require.NoError(t, err)
	catalog := eng.Catalog()
	require.Len(t, catalog, 15)
	assert.Equal(t, "bubble-sort", catalog[0].ID)
}
