package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/internal/logging"
	"github.com/aretw0/hexsim/pkg/domain"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID     string
	Steps  int
	Holder *domain.StackHolder
}

// Manager keeps named simulations and serializes access to each one.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	smu      sync.RWMutex
	sessions map[string]*hexsim.StackManager

	stackOpts []hexsim.Option
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStackOptions sets the options every new session's StackManager is built with.
func WithStackOptions(opts ...hexsim.Option) Option {
	return func(m *Manager) {
		m.stackOpts = append(m.stackOpts, opts...)
	}
}

// NewManager creates an empty session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*hexsim.StackManager),
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Create starts a session holding a single live branch.
func (m *Manager) Create(ctx context.Context, sessionID string, state domain.StackState) (*Snapshot, error) {
	var snap *Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.smu.Lock()
		defer m.smu.Unlock()

		if _, exists := m.sessions[sessionID]; exists {
			return fmt.Errorf("%w: %s", domain.ErrSessionExists, sessionID)
		}
		sm := hexsim.Start(state, m.stackOpts...)
		m.sessions[sessionID] = sm
		snap = snapshot(sessionID, sm)
		return nil
	})
	if err == nil {
		m.logger.Debug("session created", "session_id", sessionID)
	}
	return snap, err
}

// Get returns the current branches of a session.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	var snap *Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sm, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		snap = snapshot(sessionID, sm)
		return nil
	})
	return snap, err
}

// Apply runs actions against a session, in order, without interleaving
// with other calls for the same session.
func (m *Manager) Apply(ctx context.Context, sessionID string, actions ...domain.Action) (*Snapshot, error) {
	var snap *Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sm, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		if err := sm.Run(ctx, actions...); err != nil {
			m.logger.Warn("session apply interrupted", "session_id", sessionID, "err", err)
			return err
		}
		snap = snapshot(sessionID, sm)
		return nil
	})
	return snap, err
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.smu.Lock()
		defer m.smu.Unlock()

		if _, exists := m.sessions[sessionID]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		delete(m.sessions, sessionID)
		return nil
	})
}

// List returns the session IDs, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.smu.RLock()
	defer m.smu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Manager) lookup(sessionID string) (*hexsim.StackManager, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()

	sm, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return sm, nil
}

func snapshot(id string, sm *hexsim.StackManager) *Snapshot {
	return &Snapshot{ID: id, Steps: sm.Steps(), Holder: sm.Holder()}
}
