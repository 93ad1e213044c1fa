package actions

import "github.com/aretw0/hexsim/pkg/domain"

// Duplicate copies the top of the stack.
type Duplicate struct{}

func (Duplicate) Name() string { return "dup" }
func (Duplicate) Arity() int   { return 1 }

func (Duplicate) Transform(operands []domain.Iota) []domain.Outcome {
	return one(domain.Produce(operands[0], operands[0]))
}

// Swap exchanges the two topmost elements.
type Swap struct{}

func (Swap) Name() string { return "swap" }
func (Swap) Arity() int   { return 2 }

func (Swap) Transform(operands []domain.Iota) []domain.Outcome {
	return one(domain.Produce(operands[1], operands[0]))
}

// Pop discards the top of the stack.
type Pop struct{}

func (Pop) Name() string { return "pop" }
func (Pop) Arity() int   { return 1 }

func (Pop) Transform([]domain.Iota) []domain.Outcome {
	return one(domain.Produce())
}
