package domain

// Selection is the block selection cursor.
//
// Start and End are block ids; "" stands for no selection. Focus is nil when
// there is no focus and an empty map for a plain focus. MultiSelecting is
// only set while a multi-selection gesture is in progress: its presence,
// not its value, carries the meaning.
type Selection struct {
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Focus          map[string]any `json:"focus"`
	MultiSelecting *bool          `json:"isMultiSelecting,omitempty"`
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// IsMultiSelecting reports whether the multi-selection marker is present.
func (s *Selection) IsMultiSelecting() bool {
	return s != nil && s.MultiSelecting != nil
}

// HasSelection reports whether any block is selected.
func (s *Selection) HasSelection() bool {
	return s != nil && s.Start != ""
}
