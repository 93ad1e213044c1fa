package runtime_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim/internal/runtime"
	"github.com/aretw0/hexsim/pkg/actions"
	"github.com/aretw0/hexsim/pkg/domain"
)

func state(values ...domain.Iota) domain.StackState {
	return domain.NewStackState(values, nil)
}

func mixedHolder() *domain.StackHolder {
	return domain.NewStackHolder(
		domain.Ok(state(domain.KnownDouble(1), domain.KnownDouble(0))),
		domain.Fail(domain.ErrInvalidType),
		domain.Ok(state(domain.KnownDouble(8), domain.UnknownDouble())),
		domain.Ok(state(domain.KnownDouble(9))),
		domain.Ok(state(domain.KnownDouble(6), domain.KnownDouble(3))),
	)
}

func TestEngine_MatchesHolderSemantics(t *testing.T) {
	div := domain.Lift(actions.Divide{})
	want := mixedHolder().ApplyAction(div)

	for _, p := range []int{0, 1, 2, 8} {
		engine := runtime.NewEngine(runtime.WithParallelism(p))
		got, err := engine.Apply(context.Background(), 0, mixedHolder(), div)
		require.NoError(t, err)
		assert.Equal(t, want.Branches(), got.Branches(), "parallelism %d", p)
	}
}

func TestEngine_Hooks(t *testing.T) {
	var mu sync.Mutex
	var started []string
	var ended []*domain.StepEvent

	hooks := domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			mu.Lock()
			defer mu.Unlock()
			started = append(started, e.Action)
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			mu.Lock()
			defer mu.Unlock()
			ended = append(ended, e)
		},
	}
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks), runtime.WithParallelism(4))

	out, err := engine.Apply(context.Background(), 3, mixedHolder(), domain.Lift(actions.Divide{}))
	require.NoError(t, err)

	assert.Equal(t, []string{"div"}, started)
	require.Len(t, ended, 1)
	ev := ended[0]

	assert.Equal(t, 3, ev.Step)
	assert.Equal(t, domain.EventStepEnd, ev.Type)
	assert.Equal(t, 5, ev.BranchesIn)
	assert.Equal(t, out.Len(), ev.BranchesOut)
	assert.Same(t, out, ev.Output)

	// 1/0 fails, 8/? forks a failure, 9 is too short; the retained InvalidType is not new.
	assert.Equal(t, map[domain.ActionError]int{
		domain.ErrDivByZero:     2,
		domain.ErrStackTooSmall: 1,
	}, ev.NewFailures)

	assert.Equal(t, [][]int{{0}, {1}, {2, 3}, {4}, {5}}, ev.Lineage)
}

func TestEngine_NilResultEndsBranch(t *testing.T) {
	vanish := domain.ActionFunc{
		ActionName: "vanish",
		Fn: func(s domain.StackState) *domain.StackHolder {
			if s.Len() == 1 {
				return nil
			}
			return domain.SingleState(s)
		},
	}
	want := mixedHolder().ApplyAction(vanish)
	require.Equal(t, 4, want.Len())

	var ended *domain.StepEvent
	hooks := domain.LifecycleHooks{
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) { ended = e },
	}
	for _, p := range []int{1, 4} {
		engine := runtime.NewEngine(runtime.WithParallelism(p), runtime.WithLifecycleHooks(hooks))
		got, err := engine.Apply(context.Background(), 0, mixedHolder(), vanish)
		require.NoError(t, err)
		assert.Equal(t, want.Branches(), got.Branches(), "parallelism %d", p)
		require.NotNil(t, ended)
		assert.Equal(t, [][]int{{0}, {1}, {2}, nil, {3}}, ended.Lineage)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := runtime.NewEngine()
	_, err := engine.Apply(ctx, 0, mixedHolder(), domain.Lift(actions.Add{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ApplyAll(t *testing.T) {
	engine := runtime.NewEngine()
	start := domain.SingleState(state(domain.KnownDouble(13), domain.KnownDouble(8.5)))

	out, err := engine.ApplyAll(context.Background(), start, []domain.Action{
		domain.Lift(actions.Duplicate{}),
		domain.Lift(actions.Add{}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, []domain.Iota{domain.KnownDouble(13), domain.KnownDouble(17)}, out.Branches()[0].State.Stack())
}
