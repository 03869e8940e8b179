package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/folium"
	"github.com/aretw0/folium/internal/logging"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a document lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates document access, ensuring safe concurrent operations.
// Unused lock entries are dropped by reference counting.
type Manager struct {
	store ports.DocumentStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	editorOpts []folium.Option
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions sets the options of the editors created by Apply, such as
// block types and lifecycle hooks.
func WithEditorOptions(opts ...folium.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.DocumentStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release after unlocking it.
func (m *Manager) acquire(documentID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[documentID]
	if !ok {
		entry = &lockEntry{}
		m.locks[documentID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and drops the entry at zero.
func (m *Manager) release(documentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[documentID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, documentID)
	}
}

// Load retrieves an existing document from the store.
func (m *Manager) Load(ctx context.Context, documentID string) (*editor.State, error) {
	var state *editor.State
	err := m.WithLock(ctx, documentID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, documentID)
		return err
	})
	return state, err
}

// LoadOrStart loads a document, creating and saving an initial state when
// it does not exist yet.
func (m *Manager) LoadOrStart(ctx context.Context, documentID string) (*editor.State, error) {
	var state *editor.State
	err := m.WithLock(ctx, documentID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrInit(ctx, documentID)
		if err != nil || state != nil {
			return err
		}
		state = m.newEditor(documentID, nil).State()
		if err := m.store.Save(ctx, documentID, state); err != nil {
			return fmt.Errorf("failed to initialize document: %w", err)
		}
		return nil
	})
	return state, err
}

// Apply dispatches actions to a document under its lock and saves the result
// when it changed. A missing document starts from the initial state and is
// always created. It returns the states before and after the actions.
func (m *Manager) Apply(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error) {
	return m.dispatch(ctx, documentID, true, actions)
}

// Update is Apply for existing documents only: it returns
// domain.ErrDocumentNotFound instead of creating one.
func (m *Manager) Update(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error) {
	return m.dispatch(ctx, documentID, false, actions)
}

func (m *Manager) dispatch(ctx context.Context, documentID string, create bool, actions []domain.Action) (before, after *editor.State, err error) {
	if documentID == "" {
		return nil, nil, domain.ErrEmptyDocumentID
	}
	err = m.WithLock(ctx, documentID, func(ctx context.Context) error {
		stored, err := m.loadOrInit(ctx, documentID)
		if err != nil {
			return err
		}
		if stored == nil && !create {
			return domain.ErrDocumentNotFound
		}

		ed := m.newEditor(documentID, stored)
		before = ed.State()
		after, _ = ed.Dispatch(ctx, actions...)
		if after == stored {
			return nil
		}
		if err := m.store.Save(ctx, documentID, after); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	m.logger.Debug("Actions applied", "document_id", documentID, "count", len(actions), "changed", before != after)
	return before, after, nil
}

// Save persists the document state.
func (m *Manager) Save(ctx context.Context, documentID string, state *editor.State) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		return m.store.Save(ctx, documentID, state)
	})
}

// Delete removes the document from the store.
func (m *Manager) Delete(ctx context.Context, documentID string) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		return m.store.Delete(ctx, documentID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying document store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}

// WithLock runs fn while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, documentID string, fn func(context.Context) error) error {
	entry := m.acquire(documentID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(documentID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, documentID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", documentID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// loadOrInit returns the stored state, or nil when there is none.
func (m *Manager) loadOrInit(ctx context.Context, documentID string) (*editor.State, error) {
	state, err := m.store.Load(ctx, documentID)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return state, nil
}

func (m *Manager) newEditor(documentID string, state *editor.State) *folium.Editor {
	opts := append([]folium.Option{}, m.editorOpts...)
	opts = append(opts,
		folium.WithLogger(m.logger),
		folium.WithDocumentID(documentID),
		folium.WithState(state),
	)
	return folium.New(opts...)
}
