package actions

import (
	"github.com/aretw0/hexsim/pkg/domain"
)

// Add sums two numbers, offsets a vector by a number, or sums two vectors.
type Add struct{}

func (Add) Name() string { return "add" }
func (Add) Arity() int   { return 2 }

func (Add) Transform(operands []domain.Iota) []domain.Outcome {
	return []domain.Outcome{add(operands[0], operands[1])}
}

func add(a, b domain.Iota) domain.Outcome {
	switch l := a.(type) {
	case domain.Double:
		ld, lok := l.Value()
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			if !lok || !rok {
				return domain.Produce(domain.UnknownDouble())
			}
			return domain.Produce(domain.KnownDouble(ld + rd))
		case domain.Vector:
			if !lok {
				return domain.Produce(domain.UnknownVector(false))
			}
			rv, rok := r.Components()
			if !rok {
				return domain.Produce(r)
			}
			return domain.Produce(domain.VectorOf(rv.Offset(ld)))
		}
	case domain.Vector:
		lv, lok := l.Components()
		if !lok {
			// An unknown vector stays unknown with its guarantee, whatever is added.
			switch b.(type) {
			case domain.Double, domain.Vector:
				return domain.Produce(l)
			}
			return domain.Reject(domain.ErrInvalidType)
		}
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			if !rok {
				return domain.Produce(domain.UnknownVector(false))
			}
			return domain.Produce(domain.VectorOf(lv.Offset(rd)))
		case domain.Vector:
			rv, rok := r.Components()
			if !rok {
				return domain.Produce(domain.UnknownVector(false))
			}
			return domain.Produce(domain.VectorOf(lv.Add(rv)))
		}
	}
	return domain.Reject(domain.ErrInvalidType)
}

// Subtract computes deeper minus top with the typing rules of Add.
// Unlike Add, any unknown vector result loses its range guarantee.
type Subtract struct{}

func (Subtract) Name() string { return "sub" }
func (Subtract) Arity() int   { return 2 }

func (Subtract) Transform(operands []domain.Iota) []domain.Outcome {
	a, b := operands[0], operands[1]

	switch l := a.(type) {
	case domain.Double:
		ld, lok := l.Value()
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownDouble()))
			}
			return one(domain.Produce(domain.KnownDouble(ld - rd)))
		case domain.Vector:
			rv, rok := r.Components()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownVector(false)))
			}
			return one(domain.Produce(domain.KnownVector(ld-rv.X, ld-rv.Y, ld-rv.Z)))
		}
	case domain.Vector:
		lv, lok := l.Components()
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownVector(false)))
			}
			return one(domain.Produce(domain.VectorOf(lv.Offset(-rd))))
		case domain.Vector:
			rv, rok := r.Components()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownVector(false)))
			}
			return one(domain.Produce(domain.VectorOf(lv.Sub(rv))))
		}
	}
	return one(domain.Reject(domain.ErrInvalidType))
}

// Multiply multiplies numbers, scales vectors, or takes the dot product of two vectors.
type Multiply struct{}

func (Multiply) Name() string { return "mul" }
func (Multiply) Arity() int   { return 2 }

func (Multiply) Transform(operands []domain.Iota) []domain.Outcome {
	a, b := operands[0], operands[1]

	switch l := a.(type) {
	case domain.Double:
		ld, lok := l.Value()
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownDouble()))
			}
			return one(domain.Produce(domain.KnownDouble(ld * rd)))
		case domain.Vector:
			return one(scale(r, ld, lok))
		}
	case domain.Vector:
		switch r := b.(type) {
		case domain.Double:
			rd, rok := r.Value()
			return one(scale(l, rd, rok))
		case domain.Vector:
			lv, lok := l.Components()
			rv, rok := r.Components()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownDouble()))
			}
			return one(domain.Produce(domain.KnownDouble(lv.Dot(rv))))
		}
	}
	return one(domain.Reject(domain.ErrInvalidType))
}

func scale(v domain.Vector, s float64, known bool) domain.Outcome {
	vv, vok := v.Components()
	if !known || !vok {
		return domain.Produce(domain.UnknownVector(false))
	}
	return domain.Produce(domain.VectorOf(vv.Scale(s)))
}

// Divide divides numbers, divides a vector by a number, or takes the cross
// product of two vectors. A divisor that may be zero forks an ErrDivByZero branch.
type Divide struct{}

func (Divide) Name() string { return "div" }
func (Divide) Arity() int   { return 2 }

func (Divide) Transform(operands []domain.Iota) []domain.Outcome {
	a, b := operands[0], operands[1]

	switch l := a.(type) {
	case domain.Double:
		r, ok := b.(domain.Double)
		if !ok {
			break
		}
		ld, lok := l.Value()
		return divideBy(r, func(d float64) domain.Iota {
			if !lok {
				return domain.UnknownDouble()
			}
			return domain.KnownDouble(ld / d)
		}, domain.UnknownDouble())
	case domain.Vector:
		lv, lok := l.Components()
		switch r := b.(type) {
		case domain.Double:
			return divideBy(r, func(d float64) domain.Iota {
				if !lok {
					return domain.UnknownVector(false)
				}
				return domain.VectorOf(lv.Scale(1 / d))
			}, domain.UnknownVector(false))
		case domain.Vector:
			rv, rok := r.Components()
			if !lok || !rok {
				return one(domain.Produce(domain.UnknownVector(false)))
			}
			return one(domain.Produce(domain.VectorOf(lv.Cross(rv))))
		}
	}
	return one(domain.Reject(domain.ErrInvalidType))
}

// divideBy resolves the divisor: known non-zero divisors go through quotient,
// a known zero fails, and an unknown divisor forks the unknown result and the failure.
func divideBy(divisor domain.Double, quotient func(float64) domain.Iota, unknown domain.Iota) []domain.Outcome {
	d, ok := divisor.Value()
	if !ok {
		return []domain.Outcome{
			domain.Produce(unknown),
			domain.Reject(domain.ErrDivByZero),
		}
	}
	if d == 0 {
		return one(domain.Reject(domain.ErrDivByZero))
	}
	return one(domain.Produce(quotient(d)))
}

func one(o domain.Outcome) []domain.Outcome {
	return []domain.Outcome{o}
}
