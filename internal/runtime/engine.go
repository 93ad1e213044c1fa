package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/hexsim/internal/logging"
	"github.com/aretw0/hexsim/pkg/domain"
)

// Engine propagates holders through actions.
// It has the same semantics as domain.StackHolder.ApplyAction, and adds
// bounded parallelism, cancellation, lifecycle hooks and logging.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	parallelism int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithParallelism bounds how many branches are evaluated at once.
// Values below 1 mean sequential evaluation.
func WithParallelism(n int) EngineOption {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:      logging.NewNop(),
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.parallelism < 1 {
		e.parallelism = 1
	}
	return e
}

// Apply maps every live branch of holder through action.
// Failed branches are carried over at their position. The output order is
// the input order regardless of parallelism. step is reported to hooks only.
// The only error is a cancelled context.
func (e *Engine) Apply(ctx context.Context, step int, holder *domain.StackHolder, action domain.Action) (*domain.StackHolder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	in := holder.Branches()
	e.emitStepStart(ctx, step, action, len(in))

	results := make([]*domain.StackHolder, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, b := range in {
		if !b.Live() {
			results[i] = domain.Single(b)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = action.Apply(b.State)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Warn("apply interrupted", "step", step, "action", action.Name(), "error", err)
		return nil, fmt.Errorf("apply %s: %w", action.Name(), err)
	}

	out := domain.NewStackHolder()
	lineage := make([][]int, len(in))
	failures := make(map[domain.ActionError]int)
	for i, sub := range results {
		if sub == nil {
			// A nil holder from the action ends the branch.
			continue
		}
		for _, b := range sub.Branches() {
			lineage[i] = append(lineage[i], out.Len())
			if in[i].Live() && !b.Live() {
				if ae, ok := domain.AsActionError(b.Err); ok {
					failures[ae]++
				}
			}
			out.Append(domain.Single(b))
		}
	}

	elapsed := time.Since(start)
	e.logger.Debug("action applied",
		"step", step,
		"action", action.Name(),
		"branches_in", len(in),
		"branches_out", out.Len(),
		"failed", out.Failed(),
		"duration", elapsed,
	)
	e.emitStepEnd(ctx, &domain.StepEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepEnd},
		Step:        step,
		Action:      action.Name(),
		BranchesIn:  len(in),
		BranchesOut: out.Len(),
		NewFailures: failures,
		Lineage:     lineage,
		Duration:    elapsed,
		Output:      out,
	})
	return out, nil
}

// ApplyAll runs actions in sequence, stopping at the first cancellation.
func (e *Engine) ApplyAll(ctx context.Context, holder *domain.StackHolder, actions []domain.Action) (*domain.StackHolder, error) {
	current := holder
	for i, a := range actions {
		next, err := e.Apply(ctx, i, current, a)
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

func (e *Engine) emitStepStart(ctx context.Context, step int, action domain.Action, branches int) {
	if e.hooks.OnStepStart == nil {
		return
	}
	e.hooks.OnStepStart(ctx, &domain.StepEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepStart},
		Step:       step,
		Action:     action.Name(),
		BranchesIn: branches,
	})
}

func (e *Engine) emitStepEnd(ctx context.Context, event *domain.StepEvent) {
	if e.hooks.OnStepEnd == nil {
		return
	}
	e.hooks.OnStepEnd(ctx, event)
}
