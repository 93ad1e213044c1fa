package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/hexsim/pkg/domain"
)

// Chain returns hooks that call each of the given hooks in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnStepStart != nil {
					h.OnStepStart(ctx, e)
				}
			}
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnStepEnd != nil {
					h.OnStepEnd(ctx, e)
				}
			}
		},
	}
}

// LogHooks logs every finished step at Info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			attrs := []any{
				"step", e.Step,
				"action", e.Action,
				"branches_in", e.BranchesIn,
				"branches_out", e.BranchesOut,
				"duration", e.Duration,
			}
			for kind, n := range e.NewFailures {
				attrs = append(attrs, "failed_"+kind.Code(), n)
			}
			logger.InfoContext(ctx, "step", attrs...)
		},
	}
}
