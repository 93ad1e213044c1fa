package actions

import (
	"math"

	"github.com/aretw0/hexsim/pkg/domain"
)

// Length replaces a list with its length.
type Length struct{}

func (Length) Name() string { return "len" }
func (Length) Arity() int   { return 1 }

func (Length) Transform(operands []domain.Iota) []domain.Outcome {
	l, ok := operands[0].(domain.List)
	if !ok {
		return one(domain.Reject(domain.ErrInvalidType))
	}
	n, known := l.Len()
	if !known {
		return one(domain.Produce(domain.UnknownDouble()))
	}
	return one(domain.Produce(domain.KnownDouble(float64(n))))
}

// Index replaces a list and a number with the element at that position.
// An index that is negative, fractional or past the end is ErrOutOfBounds.
//
// When the index is unknown, every element of a known list is a possible
// result, plus the out of bounds failure. Elements of an unknown list have
// unknown tags, so one branch is produced per tag that can be held unknown.
type Index struct{}

func (Index) Name() string { return "index" }
func (Index) Arity() int   { return 2 }

func (Index) Transform(operands []domain.Iota) []domain.Outcome {
	l, lok := operands[0].(domain.List)
	idx, iok := operands[1].(domain.Double)
	if !lok || !iok {
		return one(domain.Reject(domain.ErrInvalidType))
	}

	i, indexKnown := idx.Value()
	if indexKnown && !validIndex(i) {
		return one(domain.Reject(domain.ErrOutOfBounds))
	}

	if items, known := l.Items(); known {
		if indexKnown {
			if int(i) >= len(items) {
				return one(domain.Reject(domain.ErrOutOfBounds))
			}
			return one(domain.Produce(items[int(i)]))
		}
		outcomes := make([]domain.Outcome, 0, len(items)+1)
		for _, it := range items {
			outcomes = append(outcomes, domain.Produce(it))
		}
		return append(outcomes, domain.Reject(domain.ErrOutOfBounds))
	}

	n, lengthKnown := l.Len()
	if indexKnown && lengthKnown {
		if int(i) >= n {
			return one(domain.Reject(domain.ErrOutOfBounds))
		}
		return unknownElements()
	}
	return append(unknownElements(), domain.Reject(domain.ErrOutOfBounds))
}

func validIndex(i float64) bool {
	return i >= 0 && i == math.Trunc(i) && i <= math.MaxInt32
}

// unknownElements lists one outcome per tag an unknown element may carry.
// Patterns and entities cannot be represented without a payload.
func unknownElements() []domain.Outcome {
	return []domain.Outcome{
		domain.Produce(domain.UnknownDouble()),
		domain.Produce(domain.UnknownVector(false)),
		domain.Produce(domain.UnknownList()),
		domain.Produce(domain.Widget{}),
	}
}
