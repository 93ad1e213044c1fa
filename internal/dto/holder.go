package dto

import (
	"github.com/aretw0/hexsim/pkg/domain"
)

// Iota is the wire form of a value. Text is its canonical rendering.
type Iota struct {
	Kind  string `json:"kind"`
	Known bool   `json:"known"`
	Text  string `json:"text"`
}

// Branch is the wire form of one possible world.
// A failed branch carries only Error (the code) and Message.
type Branch struct {
	Stack     []Iota `json:"stack,omitempty"`
	Ravenmind *Iota  `json:"ravenmind,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Holder is the wire form of a StackHolder.
type Holder struct {
	ID       string   `json:"id,omitempty"`
	Steps    int      `json:"steps"`
	Live     int      `json:"live"`
	Failed   int      `json:"failed"`
	Branches []Branch `json:"branches"`
}

// FromIota converts a domain value.
func FromIota(v domain.Iota) Iota {
	return Iota{Kind: v.Kind().String(), Known: known(v), Text: v.String()}
}

// FromHolder converts a holder. steps is the number of actions already applied.
func FromHolder(h *domain.StackHolder, steps int) Holder {
	out := Holder{
		Steps:    steps,
		Live:     h.Live(),
		Failed:   h.Failed(),
		Branches: make([]Branch, 0, h.Len()),
	}
	for _, b := range h.Branches() {
		out.Branches = append(out.Branches, fromBranch(b))
	}
	return out
}

func fromBranch(b domain.Branch) Branch {
	if !b.Live() {
		br := Branch{Message: b.Err.Error()}
		if ae, ok := domain.AsActionError(b.Err); ok {
			br.Error = ae.Code()
		}
		return br
	}

	var br Branch
	for _, v := range b.State.Stack() {
		br.Stack = append(br.Stack, FromIota(v))
	}
	if r, ok := b.State.Ravenmind(); ok {
		ri := FromIota(r)
		br.Ravenmind = &ri
	}
	return br
}

func known(v domain.Iota) bool {
	switch x := v.(type) {
	case domain.Double:
		_, ok := x.Value()
		return ok
	case domain.Vector:
		_, ok := x.Components()
		return ok
	case domain.List:
		_, ok := x.Items()
		return ok
	}
	return true
}
