package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use. States are immutable, so they are kept by pointer.
type Store struct {
	data map[string]*editor.State
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*editor.State),
	}
}

// Save keeps the state in memory.
func (s *Store) Save(ctx context.Context, documentID string, state *editor.State) error {
	if documentID == "" {
		return domain.ErrEmptyDocumentID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[documentID] = state
	return nil
}

// Load retrieves the state from memory.
func (s *Store) Load(ctx context.Context, documentID string) (*editor.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[documentID]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return state, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, documentID)
	return nil
}

// List returns the stored document IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
