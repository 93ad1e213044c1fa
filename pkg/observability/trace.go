package observability

import (
	"context"
	"sync"

	"github.com/aretw0/hexsim/pkg/domain"
)

// StepRecord is what the Recorder keeps of one applied action.
type StepRecord struct {
	Step        int
	Action      string
	Lineage     [][]int
	NewFailures map[domain.ActionError]int
	Output      *domain.StackHolder
}

// Recorder collects finished steps in order.
type Recorder struct {
	mu    sync.Mutex
	steps []StepRecord
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hooks returns lifecycle hooks that append to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.steps = append(r.steps, StepRecord{
				Step:        e.Step,
				Action:      e.Action,
				Lineage:     e.Lineage,
				NewFailures: e.NewFailures,
				Output:      e.Output,
			})
		},
	}
}

// Steps returns the recorded steps.
func (r *Recorder) Steps() []StepRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StepRecord, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = nil
}
