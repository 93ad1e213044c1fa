package domain

// Action is an instruction: a total function from one stack state to the set
// of possible resulting branches. It is solely responsible for reporting
// structurally unsuitable stacks.
type Action interface {
	Name() string
	Apply(state StackState) *StackHolder
}

// Outcome is one possible result of a ConstLenAction: the values replacing the
// consumed operands, or the error ending the branch.
type Outcome struct {
	Values []Iota
	Err    error
}

// Produce is a successful outcome.
func Produce(values ...Iota) Outcome { return Outcome{Values: values} }

// Reject is a failed outcome.
func Reject(err ActionError) Outcome { return Outcome{Err: err} }

// ConstLenAction is a context-free value transform over a fixed number of operands.
// It never sees the rest of the stack nor the ravenmind register.
type ConstLenAction interface {
	Name() string
	// Arity is the number of operands consumed from the top of the stack.
	Arity() int
	// Transform receives exactly Arity operands, deepest first, and returns
	// every possible outcome. It must return at least one.
	Transform(operands []Iota) []Outcome
}

// Lift turns a ConstLenAction into a full stack transition.
func Lift(a ConstLenAction) Action { return lifted{a} }

type lifted struct {
	ConstLenAction
}

// Unwrap returns the underlying value transform.
func (l lifted) Unwrap() ConstLenAction { return l.ConstLenAction }

func (l lifted) Apply(state StackState) *StackHolder {
	n := l.Arity()
	if state.Len() < n {
		return Single(Fail(ErrStackTooSmall))
	}

	below, operands := state.Split(n)
	args := make([]Iota, n)
	copy(args, operands)

	outcomes := l.Transform(args)
	branches := make([]Branch, 0, len(outcomes))
	for _, out := range outcomes {
		if out.Err != nil {
			branches = append(branches, Branch{Err: out.Err})
			continue
		}
		stack := make([]Iota, 0, len(below)+len(out.Values))
		stack = append(stack, below...)
		stack = append(stack, out.Values...)
		branches = append(branches, Ok(StackState{stack: stack, ravenmind: state.ravenmind}))
	}
	return &StackHolder{branches: branches}
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc struct {
	ActionName string
	Fn         func(StackState) *StackHolder
}

func (f ActionFunc) Name() string                        { return f.ActionName }
func (f ActionFunc) Apply(state StackState) *StackHolder { return f.Fn(state) }
