package middleware_test

import (
	"context"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]*editor.State
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*editor.State)}
}

func (s *MockStore) Save(ctx context.Context, documentID string, state *editor.State) error {
	s.data[documentID] = state
	return nil
}

func (s *MockStore) Load(ctx context.Context, documentID string) (*editor.State, error) {
	state, ok := s.data[documentID]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return state, nil
}

func (s *MockStore) Delete(ctx context.Context, documentID string) error {
	delete(s.data, documentID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.DocumentStore = (*MockStore)(nil)
