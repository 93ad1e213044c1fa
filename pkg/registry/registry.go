package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/hexsim/pkg/actions"
	"github.com/aretw0/hexsim/pkg/domain"
)

// Registry manages the available actions, keyed by name.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]domain.Action
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]domain.Action),
	}
}

// Default returns a registry holding every built-in action.
func Default() *Registry {
	r := NewRegistry()
	for _, a := range []domain.ConstLenAction{
		actions.Add{},
		actions.Subtract{},
		actions.Multiply{},
		actions.Divide{},
		actions.Duplicate{},
		actions.Swap{},
		actions.Pop{},
		actions.Length{},
		actions.Index{},
	} {
		r.RegisterConstLen(a)
	}
	r.Register(actions.ReadRavenmind{})
	r.Register(actions.WriteRavenmind{})
	return r
}

// Register adds an action under its own name.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(a domain.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a.Name()] = a
}

// RegisterConstLen lifts a fixed-arity transform and registers it.
func (r *Registry) RegisterConstLen(a domain.ConstLenAction) {
	r.Register(domain.Lift(a))
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (domain.Action, error) {
	r.mu.RLock()
	a, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, name)
	}
	return a, nil
}

// Resolve looks up every name, in order.
func (r *Registry) Resolve(names []string) ([]domain.Action, error) {
	out := make([]domain.Action, 0, len(names))
	for _, n := range names {
		a, err := r.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for n := range r.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
