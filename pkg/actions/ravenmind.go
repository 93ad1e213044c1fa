package actions

import "github.com/aretw0/hexsim/pkg/domain"

// ReadRavenmind pushes the ravenmind contents, or Null when the register is empty.
type ReadRavenmind struct{}

func (ReadRavenmind) Name() string { return "read_ravenmind" }

func (ReadRavenmind) Apply(state domain.StackState) *domain.StackHolder {
	r, ok := state.Ravenmind()
	if !ok {
		r = domain.Widget{}
	}
	return domain.SingleState(state.Push(r))
}

// WriteRavenmind moves the top of the stack into the ravenmind register.
type WriteRavenmind struct{}

func (WriteRavenmind) Name() string { return "write_ravenmind" }

func (WriteRavenmind) Apply(state domain.StackState) *domain.StackHolder {
	if state.Len() < 1 {
		return domain.Single(domain.Fail(domain.ErrStackTooSmall))
	}
	below, top := state.Split(1)
	return domain.SingleState(state.WithStack(below).WithRavenmind(top[0]))
}
