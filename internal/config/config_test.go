package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/algotrace/internal/config"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input:
  kind: graph
  vertex_count: 9
  seed: 7
settings:
  metric: steps
  mode: independent
algorithms: [prim, kruskal]
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 1h
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.InputGraph, cfg.Input.Kind)
	assert.Equal(t, 9, cfg.Input.VertexCount)
	assert.Equal(t, int64(7), cfg.Input.Seed)
	assert.Equal(t, 0.3, cfg.Input.Density, "unset fields keep their defaults")
	assert.Equal(t, domain.MetricSteps, cfg.Settings.Metric)
	assert.Equal(t, domain.ModeIndependent, cfg.Settings.Mode)
	assert.Equal(t, 500, cfg.Settings.SpeedMs)
	assert.Equal(t, []string{"prim", "kruskal"}, cfg.Algorithms)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input":{"kind":"array","size":4,"seed":3},"store":{"backend":"file","dir":"runs"}}`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Input.Size)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
	assert.Equal(t, "runs", cfg.Store.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("input: [unclosed"), 0644))
	_, err := config.Load(broken)
	assert.ErrorIs(t, err, domain.ErrConfig)

	backend := filepath.Join(dir, "backend.yaml")
	require.NoError(t, os.WriteFile(backend, []byte("store:\n  backend: etcd\n"), 0644))
	_, err = config.Load(backend)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestParseOverrides(t *testing.T) {
	raw, err := config.ParseOverrides([]string{"input.size=20", "input.seed=9", "log_level=warn"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"input":     map[string]any{"size": "20", "seed": "9"},
		"log_level": "warn",
	}, raw)

	_, err = config.ParseOverrides([]string{"novalue"})
	assert.ErrorIs(t, err, config.ErrInvalidOverride)

	_, err = config.ParseOverrides([]string{"input=1", "input.size=2"})
	assert.ErrorIs(t, err, config.ErrInvalidOverride)

	_, err = config.ParseOverrides([]string{"input.size=2", "input=1"})
	assert.ErrorIs(t, err, config.ErrInvalidOverride)
}

func TestApply(t *testing.T) {
	base := config.Default()
	base.Algorithms = []string{"bubble-sort", "merge-sort", "quick-sort"}

	cfg, err := base.Apply([]string{
		"input.size=20",
		"input.target=55",
		"settings.speed_ms=100",
		"store.redis.ttl=30s",
		"algorithms=heap-sort,insertion-sort",
	})
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Input.Size)
	require.NotNil(t, cfg.Input.Target)
	assert.Equal(t, 55, *cfg.Input.Target)
	assert.Equal(t, 100, cfg.Settings.SpeedMs)
	assert.Equal(t, 30*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, []string{"heap-sort", "insertion-sort"}, cfg.Algorithms)

	// The receiver is untouched.
	assert.Equal(t, 12, base.Input.Size)
	assert.Equal(t, []string{"bubble-sort", "merge-sort", "quick-sort"}, base.Algorithms)
}

func TestApply_Rejects(t *testing.T) {
	_, err := config.Default().Apply([]string{"input.size=lots"})
	assert.ErrorIs(t, err, domain.ErrConfig)

	_, err = config.Default().Apply([]string{"settings.mode=shuffled"})
	assert.ErrorIs(t, err, domain.ErrConfig)

	_, err = config.Default().Apply([]string{"input.size=100000"})
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = config.Default().Apply([]string{"input.kind=graph", "input.vertex_count=500"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecode_Settings(t *testing.T) {
	s := domain.DefaultSettings()
	err := config.Decode(map[string]any{"metric": "swaps", "speed_ms": 250.0}, &s)
	require.NoError(t, err)
	assert.Equal(t, domain.MetricSwaps, s.Metric)
	assert.Equal(t, 250, s.SpeedMs)
	assert.Equal(t, domain.ModeSynced, s.Mode)
}
