package domain

import (
	"errors"
	"fmt"
)

// ActionError is the terminal outcome of a single branch.
// It is a comparable value, so errors.Is works against the exported constants.
type ActionError int

const (
	// ErrOutOfBounds is returned when an index or range check fails.
	ErrOutOfBounds ActionError = iota + 1
	// ErrStackTooSmall is returned when fewer operands are available than an action's arity.
	ErrStackTooSmall
	// ErrDivByZero is returned when a divisor is (or may be) zero.
	ErrDivByZero
	// ErrInvalidType is returned when the operand tags are not defined for the action.
	ErrInvalidType
)

// AllActionErrors lists every ActionError kind in declaration order.
var AllActionErrors = []ActionError{ErrOutOfBounds, ErrStackTooSmall, ErrDivByZero, ErrInvalidType}

func (e ActionError) Error() string {
	switch e {
	case ErrOutOfBounds:
		return "out of bounds"
	case ErrStackTooSmall:
		return "stack too small"
	case ErrDivByZero:
		return "division by zero"
	case ErrInvalidType:
		return "invalid type"
	default:
		return fmt.Sprintf("action error(%d)", int(e))
	}
}

// Code returns a stable snake_case identifier, used for metric labels and JSON.
func (e ActionError) Code() string {
	switch e {
	case ErrOutOfBounds:
		return "out_of_bounds"
	case ErrStackTooSmall:
		return "stack_too_small"
	case ErrDivByZero:
		return "div_by_zero"
	case ErrInvalidType:
		return "invalid_type"
	default:
		return "unknown"
	}
}

// AsActionError extracts the ActionError carried by err, if any.
func AsActionError(err error) (ActionError, bool) {
	var ae ActionError
	if errors.As(err, &ae) {
		return ae, true
	}
	return 0, false
}

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when creating a session whose ID is already taken.
var ErrSessionExists = errors.New("session already exists")

// ErrUnknownAction is returned when an action name is not registered.
var ErrUnknownAction = errors.New("unknown action")

// EntityConstraintError reports the builder operation that broke the entity invariants.
type EntityConstraintError struct {
	Entity    string
	Operation string
	Type      EntityType
}

func (e *EntityConstraintError) Error() string {
	return fmt.Sprintf("entity %q: %s(%s) violates type constraints", e.Entity, e.Operation, e.Type)
}
