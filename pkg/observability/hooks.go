package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/algotrace/pkg/domain"
)

// ChainHooks merges hook sets. Each callback runs the non-nil callbacks of every set in order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnRunStart = chain(out.OnRunStart, h.OnRunStart)
		out.OnGenerateStart = chain(out.OnGenerateStart, h.OnGenerateStart)
		out.OnGenerateFinish = chain(out.OnGenerateFinish, h.OnGenerateFinish)
		out.OnRunFinish = chain(out.OnRunFinish, h.OnRunFinish)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LogHooks returns hooks that log every lifecycle event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_start",
				"run_id", e.RunID,
				"algorithms", e.Algorithms,
				"input_kind", e.InputKind,
			)
		},
		OnGenerateFinish: func(ctx context.Context, e *domain.GenerateEvent) {
			if e.Status == domain.StatusError {
				logger.WarnContext(ctx, "generate_failed",
					"run_id", e.RunID,
					"algorithm", e.AlgorithmID,
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "generate_finish",
				"run_id", e.RunID,
				"algorithm", e.AlgorithmID,
				"elapsed", e.Elapsed,
				"steps", e.Steps,
			)
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_finish",
				"run_id", e.RunID,
				"status", e.Status,
			)
		},
	}
}
