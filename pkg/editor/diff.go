package editor

import "github.com/aretw0/folium/pkg/domain"

// Diff describes what changed between two states of the same document.
// old may be nil, in which case every field of new is reported.
func Diff(documentID string, old, new *State) *domain.StateDiff {
	diff := &domain.StateDiff{DocumentID: documentID}
	if new == nil || old == new {
		return diff
	}
	if old == nil {
		old = &State{}
	}

	oldDoc, newDoc := documentOf(old), documentOf(new)
	diff.Blocks = domain.DiffBlocks(oldDoc.BlocksByUID, newDoc.BlocksByUID)
	if oldDoc.BlockOrder != newDoc.BlockOrder {
		diff.BlockOrder = newDoc.BlockOrder.UIDs()
	}
	diff.Edits = domain.DiffRecords(oldDoc.Edits, newDoc.Edits)
	diff.Post = domain.DiffRecords(old.CurrentPost, new.CurrentPost)

	if old.Selection != new.Selection && new.Selection != nil {
		diff.Selection = new.Selection
	}
	if old.Hovered != new.Hovered {
		hovered := new.Hovered
		diff.Hovered = &hovered
	}
	if old.Editor != new.Editor && new.Editor != nil {
		h := new.Editor.History()
		diff.History = &domain.HistoryDelta{Past: h.PastLen(), Future: h.FutureLen()}
	}
	return diff
}

func documentOf(s *State) *Document {
	return s.Editor.Document()
}
