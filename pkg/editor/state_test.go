package editor

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, reduce Transition, state *State, actions ...domain.Action) *State {
	t.Helper()
	for _, a := range actions {
		state = reduce(state, a)
	}
	return state
}

func TestState_Initial(t *testing.T) {
	state := Initial(nil)

	assert.Equal(t, DefaultPanel, state.Panel)
	assert.Equal(t, DefaultPreferences(), state.Preferences)
	assert.False(t, state.Selection.HasSelection())
	assert.Equal(t, 0, state.Editor.BlockOrder().Len())
	assert.False(t, state.CanUndo())
}

func TestState_NoopKeepsReference(t *testing.T) {
	reduce := New(nil)
	state := reduce(nil, domain.Action{})

	assert.Same(t, state, reduce(state, domain.Action{Type: "NOT_A_THING"}))
	assert.Same(t, state, reduce(state, domain.Action{Type: domain.ActionUndo}))
	assert.Same(t, state, reduce(state, domain.Action{Type: domain.ActionMoveBlocksUp, UIDs: []string{"ghost"}}))
}

func TestState_PanelWithoutNameIsNoop(t *testing.T) {
	reduce := New(nil)
	state := reduce(nil, domain.Action{})

	next := reduce(state, domain.Action{Type: domain.ActionSetActivePanel})
	assert.Same(t, state, next)
	assert.Equal(t, DefaultPanel, next.Panel)
	assert.Same(t, next, reduce(next, domain.Action{Type: "NOT_A_THING"}))
}

func TestState_InsertSelectsAndUndoes(t *testing.T) {
	reduce := New(nil)
	initial := reduce(nil, domain.Action{})

	state := apply(t, reduce, initial, domain.Action{
		Type:   domain.ActionInsertBlocks,
		Blocks: []*domain.Block{domain.NewBlock("a", "core/paragraph", nil)},
	})

	require.Len(t, state.Blocks(), 1)
	selected, ok := state.SelectedBlock()
	require.True(t, ok)
	assert.Equal(t, "a", selected.ID)
	assert.Equal(t, []string{"core/paragraph"}, state.Preferences.RecentlyUsedBlocks)
	assert.True(t, state.CanUndo())

	undone := reduce(state, domain.Action{Type: domain.ActionUndo})
	assert.Empty(t, undone.Blocks())
	assert.True(t, undone.CanRedo())
	assert.Same(t, state.Selection, undone.Selection, "undo only rewinds the document")
}

func TestState_ReplaceMovesCursor(t *testing.T) {
	reduce := New(nil)
	state := apply(t, reduce, nil,
		domain.Action{Type: domain.ActionResetBlocks, Blocks: []*domain.Block{{ID: "a"}, {ID: "b"}}},
		domain.Action{Type: domain.ActionSelectBlock, UID: "b"},
		domain.Action{Type: domain.ActionToggleBlockHovered, UID: "b", Hovered: true},
		domain.Action{Type: domain.ActionReplaceBlocks, UIDs: []string{"b"}, Blocks: []*domain.Block{{ID: "c"}}},
	)

	assert.Equal(t, []string{"a", "c"}, state.Editor.BlockOrder().UIDs())
	assert.Equal(t, "c", state.Selection.Start)
	assert.Equal(t, "c", state.Hovered)
}

func TestState_EditAndReset(t *testing.T) {
	reduce := New(nil)
	state := apply(t, reduce, nil,
		domain.Action{Type: domain.ActionResetPost, Post: map[string]any{"title": "Old"}},
		domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "New"}},
	)

	assert.True(t, state.IsDirty())
	assert.Equal(t, "New", state.EditedPostAttribute("title"))

	state = reduce(state, domain.Action{Type: domain.ActionResetPost, Post: map[string]any{"title": map[string]any{"raw": "New"}}})
	assert.False(t, state.IsDirty())
	assert.False(t, state.CanUndo())
	assert.Equal(t, "New", state.EditedPostAttribute("title"))
}

func TestState_MultiSelectedUIDs(t *testing.T) {
	reduce := New(nil)
	state := apply(t, reduce, nil,
		domain.Action{Type: domain.ActionResetBlocks, Blocks: []*domain.Block{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		domain.Action{Type: domain.ActionMultiSelect, Start: "c", End: "b"},
	)

	assert.Equal(t, []string{"b", "c"}, state.MultiSelectedUIDs())
	_, ok := state.SelectedBlock()
	assert.False(t, ok)
}

func TestState_JSONRoundTrip(t *testing.T) {
	reduce := New(nil)
	state := apply(t, reduce, nil,
		domain.Action{Type: domain.ActionResetBlocks, Blocks: []*domain.Block{domain.NewBlock("a", "core/paragraph", map[string]any{"content": "hi"})}},
		domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "T"}},
		domain.Action{Type: domain.ActionCreateNotice, Notice: &domain.Notice{ID: "n", Content: "saved"}},
	)

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var loaded State
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, 2, loaded.Editor.History().PastLen())
	assert.Equal(t, "T", loaded.Editor.Edits().Value("title"))
	block, ok := loaded.Block("a")
	require.True(t, ok)
	assert.Equal(t, "hi", block.Attributes.Value("content"))
	assert.Equal(t, 1, loaded.Notices.Len())

	undone := reduce(&loaded, domain.Action{Type: domain.ActionUndo})
	assert.False(t, undone.IsDirty())
	assert.Len(t, undone.Blocks(), 1)
}

func TestDiff(t *testing.T) {
	reduce := New(nil)
	initial := reduce(nil, domain.Action{})
	next := reduce(initial, domain.Action{Type: domain.ActionResetBlocks, Blocks: []*domain.Block{{ID: "bananas"}}})

	diff := Diff("doc", initial, next)
	assert.Equal(t, "doc", diff.DocumentID)
	assert.Contains(t, diff.Blocks, "bananas")
	assert.Equal(t, []string{"bananas"}, diff.BlockOrder)
	assert.Nil(t, diff.Edits)
	assert.Nil(t, diff.Selection)
	require.NotNil(t, diff.History)
	assert.Equal(t, 1, diff.History.Past)
	assert.False(t, diff.IsEmpty())

	assert.True(t, Diff("doc", next, next).IsEmpty())

	removed := reduce(next, domain.Action{Type: domain.ActionRemoveBlocks, UIDs: []string{"bananas"}})
	diff = Diff("doc", next, removed)
	assert.Contains(t, diff.Blocks, "bananas")
	assert.Nil(t, diff.Blocks["bananas"])
}
