package ports

import (
	"context"

	"github.com/aretw0/folium/pkg/editor"
)

// DocumentStore persists editor states, history included, by document id.
type DocumentStore interface {
	// Save persists the state for a given document ID.
	Save(ctx context.Context, documentID string, state *editor.State) error

	// Load retrieves the state for a given document ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, documentID string) (*editor.State, error)

	// Delete removes the state for a given document ID. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, documentID string) error

	// List returns the IDs of the stored documents.
	List(ctx context.Context) ([]string, error)
}
