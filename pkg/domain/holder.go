package domain

import (
	"fmt"
	"strings"
)

// Branch is one possible world: either a live StackState or the ActionError that ended it.
type Branch struct {
	State StackState
	Err   error
}

// Ok wraps a live state.
func Ok(state StackState) Branch { return Branch{State: state} }

// Fail wraps a terminal error.
func Fail(err ActionError) Branch { return Branch{Err: err} }

// Live reports whether the branch has not faulted.
func (b Branch) Live() bool { return b.Err == nil }

func (b Branch) String() string {
	if b.Err != nil {
		return "error: " + b.Err.Error()
	}
	return b.State.String()
}

// StackHolder stores every stack that could have been reached at this point.
// Branch order is significant and is preserved by every operation.
type StackHolder struct {
	branches []Branch
}

// NewStackHolder creates a holder from branches, copying the slice.
func NewStackHolder(branches ...Branch) *StackHolder {
	cp := make([]Branch, len(branches))
	copy(cp, branches)
	return &StackHolder{branches: cp}
}

// SingleState creates a holder with one live branch, the usual starting point.
func SingleState(state StackState) *StackHolder {
	return &StackHolder{branches: []Branch{Ok(state)}}
}

// Single creates a holder with exactly one branch.
func Single(b Branch) *StackHolder {
	return &StackHolder{branches: []Branch{b}}
}

// Branches returns a copy of the branch list.
func (h *StackHolder) Branches() []Branch {
	cp := make([]Branch, len(h.branches))
	copy(cp, h.branches)
	return cp
}

// Len returns the number of branches, live or failed.
func (h *StackHolder) Len() int { return len(h.branches) }

// Live returns the number of branches that have not faulted.
func (h *StackHolder) Live() int {
	n := 0
	for _, b := range h.branches {
		if b.Live() {
			n++
		}
	}
	return n
}

// Failed returns the number of terminal branches.
func (h *StackHolder) Failed() int { return len(h.branches) - h.Live() }

// Append moves the branches of other to the end of h.
func (h *StackHolder) Append(other *StackHolder) {
	if other == nil {
		return
	}
	h.branches = append(h.branches, other.branches...)
}

// ApplyAction maps every live branch through action and returns the union of
// the results, in branch order. Failed branches are carried over unchanged at
// their position; the action is never invoked on them.
func (h *StackHolder) ApplyAction(action Action) *StackHolder {
	next := &StackHolder{branches: make([]Branch, 0, len(h.branches))}
	for _, b := range h.branches {
		if !b.Live() {
			next.branches = append(next.branches, b)
			continue
		}
		next.Append(action.Apply(b.State))
	}
	return next
}

// String renders each branch, separated by "---" lines.
func (h *StackHolder) String() string {
	parts := make([]string, len(h.branches))
	for i, b := range h.branches {
		parts[i] = fmt.Sprintf("branch %d:\n%s", i, b.String())
	}
	return strings.Join(parts, "\n---\n")
}
