package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/internal/adapters/file"
	"github.com/aretw0/algotrace/internal/config"
	"github.com/aretw0/algotrace/internal/logging"
	"github.com/aretw0/algotrace/pkg/adapters/memory"
	"github.com/aretw0/algotrace/pkg/adapters/redis"
	"github.com/prometheus/client_golang/prometheus"
)

// Environment is an engine plus the resources it holds.
type Environment struct {
	Config config.Config
	Engine *algotrace.Engine
	Logger *slog.Logger

	closers []func() error
}

// Close releases the store connections.
func (e *Environment) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Setup loads the configuration and builds an engine backed by the configured store.
// A nil registerer skips metrics.
func Setup(opts Options, reg prometheus.Registerer) (*Environment, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := createLogger(cfg, opts.Debug)

	env := &Environment{Config: cfg, Logger: logger}
	engineOpts := []algotrace.Option{algotrace.WithLogger(logger)}
	if reg != nil {
		engineOpts = append(engineOpts, algotrace.WithMetrics(reg))
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		engineOpts = append(engineOpts, algotrace.WithStore(memory.NewStore()))
	case config.BackendFile:
		engineOpts = append(engineOpts,
			algotrace.WithStore(file.New(cfg.Store.Dir)),
			algotrace.WithLocker(file.NewLocker(cfg.Store.Dir)),
		)
	case config.BackendRedis:
		rc := cfg.Store.Redis
		prefix := rc.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(prefix), redis.WithTTL(rc.TTL))
		env.closers = append(env.closers, store.Close)
		engineOpts = append(engineOpts,
			algotrace.WithStore(store),
			algotrace.WithLocker(redis.NewLocker(store.Client(), prefix)),
		)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	eng, err := algotrace.New(engineOpts...)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	env.Engine = eng
	logger.Debug("engine ready", "backend", cfg.Store.Backend, "algorithms", len(eng.Catalog()))
	return env, nil
}

// createLogger honors the configured level; --debug forces debug.
func createLogger(cfg config.Config, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}
