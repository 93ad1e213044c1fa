package hexsim

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/hexsim/internal/logging"
	"github.com/aretw0/hexsim/internal/runtime"
	"github.com/aretw0/hexsim/pkg/domain"
)

// Version is the current release of hexsim.
const Version = "0.3.0"

// StackManager is the high-level entry point for the hexsim library.
// It owns one StackHolder and sequences actions against it.
// It is safe for concurrent use; actions are applied one at a time.
type StackManager struct {
	mu     sync.RWMutex
	holder *domain.StackHolder
	steps  int

	runtime     *runtime.Engine
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	parallelism int
}

// Option defines a functional option for configuring the StackManager.
type Option func(*StackManager)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *StackManager) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *StackManager) {
		m.logger = logger
	}
}

// WithParallelism sets how many branches may be evaluated concurrently.
func WithParallelism(n int) Option {
	return func(m *StackManager) {
		m.parallelism = n
	}
}

// NewStackManager wraps holder. The manager takes ownership of it.
func NewStackManager(holder *domain.StackHolder, opts ...Option) *StackManager {
	m := &StackManager{holder: holder, parallelism: 1}
	for _, opt := range opts {
		opt(m)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if m.logger == nil {
		m.logger = logging.NewNop()
	}

	m.runtime = runtime.NewEngine(
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithParallelism(m.parallelism),
	)
	return m
}

// Start creates a manager holding a single live branch.
func Start(state domain.StackState, opts ...Option) *StackManager {
	return NewStackManager(domain.SingleState(state), opts...)
}

// ApplyAction replaces the held branches with the result of applying action
// to every live branch. On error (cancellation) the holder is unchanged.
func (m *StackManager) ApplyAction(ctx context.Context, action domain.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.runtime.Apply(ctx, m.steps, m.holder, action)
	if err != nil {
		return err
	}
	m.holder = next
	m.steps++
	return nil
}

// Run applies actions in order, stopping at the first error.
func (m *StackManager) Run(ctx context.Context, actions ...domain.Action) error {
	for _, a := range actions {
		if err := m.ApplyAction(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Holder returns a snapshot of the current branches.
func (m *StackManager) Holder() *domain.StackHolder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.NewStackHolder(m.holder.Branches()...)
}

// Branches returns the current branch list.
func (m *StackManager) Branches() []domain.Branch {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holder.Branches()
}

// Steps returns how many actions have been applied.
func (m *StackManager) Steps() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.steps
}

func (m *StackManager) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holder.String()
}
