package domain

// StateDiff represents the changes between two editor states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// DocumentID is always present to identify the target.
	DocumentID string `json:"document_id"`

	// Blocks contains added or changed blocks. Removed blocks are present
	// with a nil value.
	Blocks map[string]*Block `json:"blocks,omitempty"`

	// BlockOrder is the full order, sent only when it changed.
	BlockOrder []string `json:"block_order,omitempty"`

	// Edits contains changed pending edits; settled keys have a nil value.
	Edits map[string]any `json:"edits,omitempty"`

	// Post contains changed fields of the last-known post.
	Post map[string]any `json:"post,omitempty"`

	Selection *Selection `json:"selection,omitempty"`
	Hovered   *string    `json:"hovered,omitempty"`

	History *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta carries the new undo/redo depths.
type HistoryDelta struct {
	Past   int `json:"past"`
	Future int `json:"future"`
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return len(d.Blocks) == 0 &&
		d.BlockOrder == nil &&
		len(d.Edits) == 0 &&
		len(d.Post) == 0 &&
		d.Selection == nil &&
		d.Hovered == nil &&
		d.History == nil
}

// DiffRecords returns the entries that differ between old and new.
// Keys missing from new are reported with a nil value.
func DiffRecords(old, new *Record) map[string]any {
	if old == new {
		return nil
	}
	delta := make(map[string]any)
	for _, k := range new.Keys() {
		v := new.Value(k)
		if prev, ok := old.Get(k); !ok || !Same(prev, v) {
			delta[k] = v
		}
	}
	for _, k := range old.Keys() {
		if !new.Has(k) {
			delta[k] = nil
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// DiffBlocks returns blocks added or replaced in new, and removed ids mapped
// to nil. Blocks are compared by pointer.
func DiffBlocks(old, new *BlockMap) map[string]*Block {
	if old == new {
		return nil
	}
	delta := make(map[string]*Block)
	for _, id := range new.UIDs() {
		b, _ := new.Get(id)
		if prev, ok := old.Get(id); !ok || prev != b {
			delta[id] = b
		}
	}
	for _, id := range old.UIDs() {
		if !new.Has(id) {
			delta[id] = nil
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}
