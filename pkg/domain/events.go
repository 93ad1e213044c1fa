package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepStart EventType = "step_start"
	EventStepEnd   EventType = "step_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent describes one application of an action to a holder.
type StepEvent struct {
	EventBase
	Step   int    `json:"step"`
	Action string `json:"action"`

	// BranchesIn and BranchesOut count every branch, live or failed.
	BranchesIn  int `json:"branches_in"`
	BranchesOut int `json:"branches_out"`
	// NewFailures counts the branches that faulted during this step, by kind.
	NewFailures map[ActionError]int `json:"new_failures,omitempty"`
	// Lineage maps each input branch index to the output branch indices it produced.
	Lineage  [][]int       `json:"lineage,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	// Output is the resulting holder. Only set on step_end; it must not be modified.
	Output *StackHolder `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepStart func(context.Context, *StepEvent)
	OnStepEnd   func(context.Context, *StepEvent)
}
