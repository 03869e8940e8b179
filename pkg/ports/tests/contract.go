package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleState builds a state with blocks, edits, a post and some history.
func sampleState() *editor.State {
	reduce := editor.New(nil)
	state := reduce(nil, domain.Action{Type: domain.ActionResetPost, Post: map[string]any{"title": "Draft"}})
	state = reduce(state, domain.Action{
		Type:   domain.ActionResetBlocks,
		Blocks: []*domain.Block{domain.NewBlock("intro", "core/paragraph", map[string]any{"content": "Hello"})},
	})
	state = reduce(state, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "Final"}})
	return state
}

// DocumentStoreContract is a reusable test suite that verifies if an adapter
// complies with ports.DocumentStore.
func DocumentStoreContract(t *testing.T, store ports.DocumentStore) {
	t.Helper()
	ctx := context.Background()
	documentID := fmt.Sprintf("contract-%d", time.Now().UnixNano())

	t.Run("Save and Load", func(t *testing.T) {
		state := sampleState()
		require.NoError(t, store.Save(ctx, documentID, state))

		loaded, err := store.Load(ctx, documentID)
		require.NoError(t, err)

		assert.Equal(t, "Final", loaded.EditedPostAttribute("title"))
		assert.Equal(t, "Draft", loaded.CurrentPost.Value("title"))
		require.Len(t, loaded.Blocks(), 1)
		assert.Equal(t, "Hello", loaded.Blocks()[0].Attributes.Value("content"))
		assert.Equal(t, state.Editor.History().PastLen(), loaded.Editor.History().PastLen())
	})

	t.Run("Loaded state keeps its history", func(t *testing.T) {
		loaded, err := store.Load(ctx, documentID)
		require.NoError(t, err)

		undone := editor.New(nil)(loaded, domain.Action{Type: domain.ActionUndo})
		assert.False(t, undone.IsDirty())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+documentID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := documentID + "-2"
		require.NoError(t, store.Save(ctx, other, sampleState()))
		defer func() { _ = store.Delete(ctx, other) }()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, documentID)
		assert.Contains(t, ids, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, documentID))

		_, err := store.Load(ctx, documentID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

		assert.NoError(t, store.Delete(ctx, documentID), "deleting twice is not an error")
	})
}
