package domain

import "strings"

// StackState is one snapshot of the operand stack (top = last element)
// plus the optional ravenmind register.
// A StackState is never mutated after construction; every branch owns its own copy.
type StackState struct {
	stack     []Iota
	ravenmind Iota
}

// NewStackState copies stack. A nil ravenmind means the register is empty.
func NewStackState(stack []Iota, ravenmind Iota) StackState {
	cp := make([]Iota, len(stack))
	copy(cp, stack)
	return StackState{stack: cp, ravenmind: ravenmind}
}

// Stack returns a copy of the operand stack, bottom first.
func (s StackState) Stack() []Iota {
	cp := make([]Iota, len(s.stack))
	copy(cp, s.stack)
	return cp
}

// Len returns the stack depth.
func (s StackState) Len() int { return len(s.stack) }

// Top returns the element n positions below the top (0 = top).
func (s StackState) Top(n int) (Iota, bool) {
	i := len(s.stack) - 1 - n
	if n < 0 || i < 0 {
		return nil, false
	}
	return s.stack[i], true
}

// Ravenmind returns the register contents, if any.
func (s StackState) Ravenmind() (Iota, bool) { return s.ravenmind, s.ravenmind != nil }

// WithStack returns a state with the given stack and the same ravenmind.
func (s StackState) WithStack(stack []Iota) StackState {
	return NewStackState(stack, s.ravenmind)
}

// WithRavenmind returns a state with the same stack and the given register.
func (s StackState) WithRavenmind(r Iota) StackState {
	return StackState{stack: s.stack, ravenmind: r}
}

// Push returns a state with values appended on top.
func (s StackState) Push(values ...Iota) StackState {
	next := make([]Iota, 0, len(s.stack)+len(values))
	next = append(next, s.stack...)
	next = append(next, values...)
	return StackState{stack: next, ravenmind: s.ravenmind}
}

// Split separates the top n elements from the rest. It panics if n exceeds the depth.
func (s StackState) Split(n int) (below, top []Iota) {
	cut := len(s.stack) - n
	return s.stack[:cut:cut], s.stack[cut:]
}

// String renders the elements bottom to top, one per line.
func (s StackState) String() string {
	lines := make([]string, len(s.stack))
	for i, it := range s.stack {
		lines[i] = it.String()
	}
	return strings.Join(lines, "\n")
}
