package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/pkg/actions"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/session"
)

func start(values ...domain.Iota) domain.StackState {
	return domain.NewStackState(values, nil)
}

func TestManager_Lifecycle(t *testing.T) {
	manager := session.NewManager()
	ctx := context.Background()

	snap, err := manager.Create(ctx, "s1", start(domain.KnownDouble(13), domain.KnownDouble(8.5)))
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Steps)
	assert.Equal(t, 1, snap.Holder.Len())

	_, err = manager.Create(ctx, "s1", start())
	assert.ErrorIs(t, err, domain.ErrSessionExists)

	snap, err = manager.Apply(ctx, "s1", domain.Lift(actions.Add{}))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Steps)
	assert.Equal(t, []domain.Iota{domain.KnownDouble(21.5)}, snap.Holder.Branches()[0].State.Stack())

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)

	require.NoError(t, manager.Delete(ctx, "s1"))
	_, err = manager.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, manager.Delete(ctx, "s1"), domain.ErrSessionNotFound)
	_, err = manager.Apply(ctx, "s1", domain.Lift(actions.Add{}))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ConcurrentApplyIsSerialized(t *testing.T) {
	manager := session.NewManager(session.WithStackOptions(hexsim.WithParallelism(2)))
	ctx := context.Background()
	_, err := manager.Create(ctx, "counter", start(domain.KnownDouble(0)))
	require.NoError(t, err)

	// Each batch duplicates, adds one and drops the copy: a net +1.
	one := domain.ActionFunc{ActionName: "push_one", Fn: func(s domain.StackState) *domain.StackHolder {
		return domain.SingleState(s.Push(domain.KnownDouble(1)))
	}}
	batch := []domain.Action{
		domain.Lift(actions.Duplicate{}),
		one,
		domain.Lift(actions.Add{}),
		domain.Lift(actions.Swap{}),
		domain.Lift(actions.Pop{}),
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Apply(ctx, "counter", batch...)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := manager.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Steps)
	assert.Equal(t, []domain.Iota{domain.KnownDouble(20)}, snap.Holder.Branches()[0].State.Stack())
}

func TestManager_CancelledContext(t *testing.T) {
	manager := session.NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manager.Create(ctx, "s", start())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = manager.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_ManySessions(t *testing.T) {
	manager := session.NewManager()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := manager.Create(ctx, fmt.Sprintf("s%d", i), start())
		require.NoError(t, err)
	}
	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s1", "s2", "s3", "s4"}, ids)
}
