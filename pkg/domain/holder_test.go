package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim/pkg/domain"
)

// forkAction consumes two operands and returns one outcome per configured result.
type forkAction struct {
	outcomes []domain.Outcome
	calls    int
}

func (f *forkAction) Name() string { return "fork" }
func (f *forkAction) Arity() int   { return 2 }
func (f *forkAction) Transform(operands []domain.Iota) []domain.Outcome {
	f.calls++
	return f.outcomes
}

func doubles(vs ...float64) []domain.Iota {
	out := make([]domain.Iota, len(vs))
	for i, v := range vs {
		out[i] = domain.KnownDouble(v)
	}
	return out
}

func TestLift_StackTooSmall(t *testing.T) {
	fork := &forkAction{outcomes: []domain.Outcome{domain.Produce()}}
	action := domain.Lift(fork)

	holder := action.Apply(domain.NewStackState(doubles(1), domain.Widget{}))

	require.Equal(t, 1, holder.Len())
	b := holder.Branches()[0]
	assert.ErrorIs(t, b.Err, domain.ErrStackTooSmall)
	assert.Equal(t, 0, fork.calls, "transform must not run on a short stack")
}

func TestLift_KeepsStackBelowAndRavenmind(t *testing.T) {
	fork := &forkAction{outcomes: []domain.Outcome{
		domain.Produce(domain.KnownDouble(10)),
		domain.Reject(domain.ErrDivByZero),
		domain.Produce(domain.KnownDouble(20), domain.KnownDouble(30)),
	}}
	state := domain.NewStackState(doubles(1, 2, 3, 4), domain.KnownDouble(7))

	holder := domain.Lift(fork).Apply(state)
	branches := holder.Branches()
	require.Len(t, branches, 3)

	assert.True(t, branches[0].Live())
	assert.Equal(t, doubles(1, 2, 10), branches[0].State.Stack())
	r, ok := branches[0].State.Ravenmind()
	assert.True(t, ok)
	assert.Equal(t, domain.KnownDouble(7), r)

	assert.ErrorIs(t, branches[1].Err, domain.ErrDivByZero)

	assert.Equal(t, doubles(1, 2, 20, 30), branches[2].State.Stack())

	// the source state is untouched
	assert.Equal(t, doubles(1, 2, 3, 4), state.Stack())
}

func TestLift_BranchesDoNotShareStorage(t *testing.T) {
	fork := &forkAction{outcomes: []domain.Outcome{
		domain.Produce(domain.KnownDouble(10)),
		domain.Produce(domain.KnownDouble(20)),
	}}
	holder := domain.Lift(fork).Apply(domain.NewStackState(doubles(1, 2, 3), nil))
	branches := holder.Branches()

	a := branches[0].State.Push(domain.KnownDouble(100))
	b := branches[1].State.Push(domain.KnownDouble(200))

	assert.Equal(t, doubles(1, 10, 100), a.Stack())
	assert.Equal(t, doubles(1, 20, 200), b.Stack())
}

func TestStackHolder_ApplyAction_RetainsFailedBranches(t *testing.T) {
	holder := domain.NewStackHolder(
		domain.Ok(domain.NewStackState(doubles(1, 2), nil)),
		domain.Fail(domain.ErrInvalidType),
		domain.Ok(domain.NewStackState(doubles(3), nil)),
	)
	fork := &forkAction{outcomes: []domain.Outcome{
		domain.Produce(domain.KnownDouble(5)),
		domain.Produce(domain.KnownDouble(6)),
	}}

	next := holder.ApplyAction(domain.Lift(fork))
	branches := next.Branches()

	require.Len(t, branches, 4)
	assert.Equal(t, doubles(5), branches[0].State.Stack())
	assert.Equal(t, doubles(6), branches[1].State.Stack())
	assert.ErrorIs(t, branches[2].Err, domain.ErrInvalidType)
	assert.ErrorIs(t, branches[3].Err, domain.ErrStackTooSmall)

	assert.Equal(t, 1, fork.calls, "failed and short branches never reach the transform")
	assert.Equal(t, 2, next.Live())
	assert.Equal(t, 2, next.Failed())

	// the original holder is unchanged
	assert.Equal(t, 3, holder.Len())
}

func TestStackHolder_String(t *testing.T) {
	holder := domain.NewStackHolder(
		domain.Ok(domain.NewStackState(doubles(1, 2), nil)),
		domain.Fail(domain.ErrDivByZero),
	)
	assert.Equal(t, "branch 0:\n1\n2\n---\nbranch 1:\nerror: division by zero", holder.String())
}

func TestActionError_Codes(t *testing.T) {
	for _, e := range domain.AllActionErrors {
		assert.NotEqual(t, "unknown", e.Code())
		got, ok := domain.AsActionError(e)
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}
}
