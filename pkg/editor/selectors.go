package editor

import "github.com/aretw0/folium/pkg/domain"

// Blocks returns the present blocks in document order.
func (s *State) Blocks() []*domain.Block {
	return s.Editor.Blocks()
}

// Block returns the present block with the given id.
func (s *State) Block(uid string) (*domain.Block, bool) {
	return s.Editor.BlocksByUID().Get(uid)
}

// SelectedBlock returns the block under a single-block selection.
func (s *State) SelectedBlock() (*domain.Block, bool) {
	sel := s.Selection
	if !sel.HasSelection() || sel.Start != sel.End {
		return nil, false
	}
	return s.Block(sel.Start)
}

// MultiSelectedUIDs returns the ids between the selection ends, in document
// order. It is empty unless the selection spans more than one block.
func (s *State) MultiSelectedUIDs() []string {
	sel := s.Selection
	if !sel.HasSelection() || sel.Start == sel.End {
		return nil
	}
	order := s.Editor.BlockOrder()
	start, end := order.Index(sel.Start), order.Index(sel.End)
	if start < 0 || end < 0 {
		return nil
	}
	if start > end {
		start, end = end, start
	}
	return order.UIDs()[start : end+1]
}

// EditedPostAttribute returns the pending edit for key, falling back to the
// last-known post.
func (s *State) EditedPostAttribute(key string) any {
	if v, ok := s.Editor.Edits().Get(key); ok {
		return v
	}
	return s.CurrentPost.Value(key)
}

// IsDirty reports whether there are pending edits.
func (s *State) IsDirty() bool {
	return s.Editor.Edits().Len() > 0
}

// CanUndo reports whether the document history has a past.
func (s *State) CanUndo() bool {
	return s.Editor.History().CanUndo()
}

// CanRedo reports whether the document history has a future.
func (s *State) CanRedo() bool {
	return s.Editor.History().CanRedo()
}
