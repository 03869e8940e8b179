package editor

import (
	"testing"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBlocks_ResetBlocks(t *testing.T) {
	view := reduceView(nil, domain.Action{
		Type:   domain.ActionResetBlocks,
		Blocks: []*domain.Block{{ID: "bananas"}},
	})

	assert.Equal(t, []string{"bananas"}, view.BlocksByUID().UIDs())
	assert.Equal(t, []string{"bananas"}, view.BlockOrder().UIDs())
}

func TestBlocks_InsertAtPosition(t *testing.T) {
	order := domain.NewBlockOrder("kumquat", "loquat")

	next := reduceBlockOrder(order, domain.Action{
		Type:     domain.ActionInsertBlocks,
		Position: intPtr(1),
		Blocks:   []*domain.Block{{ID: "persimmon"}},
	})

	assert.Equal(t, []string{"kumquat", "persimmon", "loquat"}, next.UIDs())
	assert.Equal(t, []string{"kumquat", "loquat"}, order.UIDs(), "input order must not change")
}

func TestBlocks_InsertDefaultsToEndAndClamps(t *testing.T) {
	order := domain.NewBlockOrder("a", "b")
	blocks := []*domain.Block{{ID: "c"}}

	next := reduceBlockOrder(order, domain.Action{Type: domain.ActionInsertBlocks, Blocks: blocks})
	assert.Equal(t, []string{"a", "b", "c"}, next.UIDs())

	next = reduceBlockOrder(order, domain.Action{Type: domain.ActionInsertBlocks, Blocks: blocks, Position: intPtr(99)})
	assert.Equal(t, []string{"a", "b", "c"}, next.UIDs())

	next = reduceBlockOrder(order, domain.Action{Type: domain.ActionInsertBlocks, Blocks: blocks, Position: intPtr(-3)})
	assert.Equal(t, []string{"c", "a", "b"}, next.UIDs())

	assert.Same(t, order, reduceBlockOrder(order, domain.Action{Type: domain.ActionInsertBlocks}))
}

func TestBlocks_InsertOverwritesMap(t *testing.T) {
	old := domain.NewBlock("a", "core/text", nil)
	blocks := domain.NewBlockMap(old)
	fresh := domain.NewBlock("a", "core/image", nil)

	next := reduceBlocksByUID(blocks, domain.Action{Type: domain.ActionInsertBlocks, Blocks: []*domain.Block{fresh}})

	got, ok := next.Get("a")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestBlocks_MoveUp(t *testing.T) {
	order := domain.NewBlockOrder("chicken", "ribs", "veggies")

	moved := reduceBlockOrder(order, domain.Action{Type: domain.ActionMoveBlocksUp, UIDs: []string{"ribs", "veggies"}})
	assert.Equal(t, []string{"ribs", "veggies", "chicken"}, moved.UIDs())

	again := reduceBlockOrder(moved, domain.Action{Type: domain.ActionMoveBlocksUp, UIDs: []string{"ribs"}})
	assert.Same(t, moved, again, "moving the first block up is a no-op")
}

func TestBlocks_MoveDown(t *testing.T) {
	order := domain.NewBlockOrder("chicken", "ribs", "veggies")

	moved := reduceBlockOrder(order, domain.Action{Type: domain.ActionMoveBlocksDown, UIDs: []string{"chicken", "ribs"}})
	assert.Equal(t, []string{"veggies", "chicken", "ribs"}, moved.UIDs())

	again := reduceBlockOrder(moved, domain.Action{Type: domain.ActionMoveBlocksDown, UIDs: []string{"ribs"}})
	assert.Same(t, moved, again, "moving the last block down is a no-op")
}

func TestBlocks_MoveNoops(t *testing.T) {
	empty := domain.NewBlockOrder()
	assert.Same(t, empty, reduceBlockOrder(empty, domain.Action{Type: domain.ActionMoveBlocksUp, UIDs: []string{"a"}}))
	assert.Same(t, empty, reduceBlockOrder(empty, domain.Action{Type: domain.ActionMoveBlocksDown, UIDs: []string{"a"}}))

	order := domain.NewBlockOrder("a", "b")
	assert.Same(t, order, reduceBlockOrder(order, domain.Action{Type: domain.ActionMoveBlocksUp, UIDs: []string{"ghost"}}))
	assert.Same(t, order, reduceBlockOrder(order, domain.Action{Type: domain.ActionMoveBlocksDown, UIDs: []string{"ghost"}}))
	assert.Same(t, order, reduceBlockOrder(order, domain.Action{Type: domain.ActionMoveBlocksUp}))
}

func TestBlocks_UpdateAttributesUnchanged(t *testing.T) {
	block := domain.NewBlock("chicken", "core/test-block", map[string]any{"content": "ribs"})
	blocks := domain.NewBlockMap(block)

	next := reduceBlocksByUID(blocks, domain.Action{
		Type:       domain.ActionUpdateBlockAttributes,
		UID:        "chicken",
		Attributes: map[string]any{"content": "ribs"},
	})

	assert.Same(t, blocks, next)
}

func TestBlocks_UpdateAttributesChanged(t *testing.T) {
	block := domain.NewBlock("chicken", "core/test-block", map[string]any{"content": "ribs", "align": "left"})
	blocks := domain.NewBlockMap(block)

	next := reduceBlocksByUID(blocks, domain.Action{
		Type:       domain.ActionUpdateBlockAttributes,
		UID:        "chicken",
		Attributes: map[string]any{"content": "wings"},
	})

	got, _ := next.Get("chicken")
	assert.NotSame(t, block, got)
	assert.Equal(t, "wings", got.Attributes.Value("content"))
	assert.Equal(t, "left", got.Attributes.Value("align"))
	assert.Equal(t, "ribs", block.Attributes.Value("content"), "the old block must be untouched")
}

func TestBlocks_UnknownUIDIsNoop(t *testing.T) {
	blocks := domain.NewBlockMap(domain.NewBlock("a", "core/text", nil))

	assert.Same(t, blocks, reduceBlocksByUID(blocks, domain.Action{
		Type: domain.ActionUpdateBlockAttributes, UID: "ghost", Attributes: map[string]any{"x": 1},
	}))
	assert.Same(t, blocks, reduceBlocksByUID(blocks, domain.Action{
		Type: domain.ActionUpdateBlock, UID: "ghost", Updates: map[string]any{"name": "core/image"},
	}))
}

func TestBlocks_UpdateBlockAlwaysClones(t *testing.T) {
	block := domain.NewBlock("a", "core/text", nil)
	blocks := domain.NewBlockMap(block)

	next := reduceBlocksByUID(blocks, domain.Action{
		Type:    domain.ActionUpdateBlock,
		UID:     "a",
		Updates: map[string]any{"name": "core/text"},
	})
	got, _ := next.Get("a")
	assert.NotSame(t, block, got)
	assert.Equal(t, "core/text", got.Name)

	next = reduceBlocksByUID(blocks, domain.Action{
		Type:    domain.ActionUpdateBlock,
		UID:     "a",
		Updates: map[string]any{"isValid": false, "source": "paste"},
	})
	got, _ = next.Get("a")
	assert.False(t, got.IsValid)
	assert.Equal(t, "paste", got.Extra["source"])
}

func TestBlocks_Replace(t *testing.T) {
	doc := reduceDocument(nil, domain.Action{
		Type: domain.ActionResetBlocks,
		Blocks: []*domain.Block{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
		},
	})

	next := reduceDocument(doc, domain.Action{
		Type:   domain.ActionReplaceBlocks,
		UIDs:   []string{"b", "d"},
		Blocks: []*domain.Block{{ID: "x"}, {ID: "y"}},
	})

	assert.Equal(t, []string{"a", "x", "y", "c"}, next.BlockOrder.UIDs())
	assert.Equal(t, []string{"a", "c", "x", "y"}, next.BlocksByUID.UIDs())
}

func TestBlocks_ReplaceAnchorsOnFirstUID(t *testing.T) {
	order := domain.NewBlockOrder("a", "b", "c")

	next := reduceBlockOrder(order, domain.Action{
		Type:   domain.ActionReplaceBlocks,
		UIDs:   []string{"c", "a"},
		Blocks: []*domain.Block{{ID: "x"}},
	})

	assert.Equal(t, []string{"b", "x"}, next.UIDs())
}

func TestBlocks_ReplaceWithoutBlocksIsNoop(t *testing.T) {
	doc := reduceDocument(nil, domain.Action{Type: domain.ActionResetBlocks, Blocks: []*domain.Block{{ID: "a"}}})

	assert.Same(t, doc, reduceDocument(doc, domain.Action{Type: domain.ActionReplaceBlocks, UIDs: []string{"a"}}))
	assert.Same(t, doc, reduceDocument(doc, domain.Action{
		Type: domain.ActionReplaceBlocks, UIDs: []string{"a"}, Blocks: []*domain.Block{},
	}))
}

func TestBlocks_Remove(t *testing.T) {
	doc := reduceDocument(nil, domain.Action{
		Type:   domain.ActionResetBlocks,
		Blocks: []*domain.Block{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	})

	next := reduceDocument(doc, domain.Action{Type: domain.ActionRemoveBlocks, UIDs: []string{"a", "c"}})
	assert.Equal(t, []string{"b"}, next.BlockOrder.UIDs())
	assert.Equal(t, []string{"b"}, next.BlocksByUID.UIDs())

	assert.Same(t, next, reduceDocument(next, domain.Action{Type: domain.ActionRemoveBlocks, UIDs: []string{"ghost"}}))
}

func TestEdits_MergeAndKeepReference(t *testing.T) {
	edits := reduceEdits(nil, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "Hi"}})
	assert.Equal(t, "Hi", edits.Value("title"))

	assert.Same(t, edits, reduceEdits(edits, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "Hi"}}))

	next := reduceEdits(edits, domain.Action{Type: domain.ActionSetupNewPost, Edits: map[string]any{"status": "draft"}})
	assert.Equal(t, []string{"status", "title"}, next.Keys())
}

func TestEdits_ResetBlocksDropsContent(t *testing.T) {
	edits := domain.NewRecord(map[string]any{"content": "<p>x</p>", "title": "t"})

	next := reduceEdits(edits, domain.Action{Type: domain.ActionResetBlocks})
	assert.Equal(t, []string{"title"}, next.Keys())

	assert.Same(t, next, reduceEdits(next, domain.Action{Type: domain.ActionResetBlocks}))
}

func TestEdits_ResetPostSettlesMatchingKeys(t *testing.T) {
	edits := domain.NewRecord(map[string]any{"title": "a", "status": "draft"})

	next := reduceEdits(edits, domain.Action{
		Type: domain.ActionResetPost,
		Post: map[string]any{
			"title":  map[string]any{"raw": "a", "rendered": "A"},
			"status": "publish",
		},
	})

	assert.Equal(t, []string{"status"}, next.Keys())
	assert.Equal(t, "draft", next.Value("status"))
}

func TestEdits_ResetPostKeepsReferenceWhenNothingSettles(t *testing.T) {
	edits := domain.NewRecord(map[string]any{"title": "a"})

	assert.Same(t, edits, reduceEdits(edits, domain.Action{
		Type: domain.ActionResetPost,
		Post: map[string]any{"title": "b"},
	}))
}

func TestEdits_ResetPostKeepsNilEditForAbsentKey(t *testing.T) {
	edits := domain.NewRecord(map[string]any{"excerpt": nil, "title": nil})

	next := reduceEdits(edits, domain.Action{
		Type: domain.ActionResetPost,
		Post: map[string]any{"title": nil},
	})

	assert.Equal(t, []string{"excerpt"}, next.Keys())
}

func TestDocument_UnknownActionKeepsReference(t *testing.T) {
	doc := reduceDocument(nil, domain.Action{})
	assert.Same(t, doc, reduceDocument(doc, domain.Action{Type: "NOT_A_THING"}))
}

func TestView_ResetPostTruncatesHistory(t *testing.T) {
	view := reduceView(nil, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "a"}})
	view = reduceView(view, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "b"}})
	require.Equal(t, 2, view.History().PastLen())

	reset := reduceView(view, domain.Action{Type: domain.ActionResetPost, Post: map[string]any{"title": "x"}})

	assert.NotSame(t, view, reset)
	assert.Equal(t, 0, reset.History().PastLen())
	assert.Equal(t, 0, reset.History().FutureLen())
	assert.Equal(t, "b", reset.Edits().Value("title"))
}

func TestView_UndoRedo(t *testing.T) {
	initial := reduceView(nil, domain.Action{})
	edited := reduceView(initial, domain.Action{Type: domain.ActionEditPost, Edits: map[string]any{"title": "a"}})

	undone := reduceView(edited, domain.Action{Type: domain.ActionUndo})
	assert.Same(t, initial.Document(), undone.Document())

	redone := reduceView(undone, domain.Action{Type: domain.ActionRedo})
	assert.Same(t, edited.Document(), redone.Document())

	assert.Same(t, initial, reduceView(initial, domain.Action{Type: domain.ActionUndo}))
}

func TestView_Blocks(t *testing.T) {
	view := reduceView(nil, domain.Action{
		Type:   domain.ActionResetBlocks,
		Blocks: []*domain.Block{{ID: "b"}, {ID: "a"}},
	})

	blocks := view.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "b", blocks[0].ID)
	assert.Equal(t, "a", blocks[1].ID)

	var empty *View
	assert.Empty(t, empty.Blocks())
}
