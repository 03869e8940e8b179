package editor

import (
	"encoding/json"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/history"
)

// Document is one undoable snapshot of the edited post.
type Document struct {
	Edits       *domain.Record     `json:"edits"`
	BlocksByUID *domain.BlockMap   `json:"blocksByUid"`
	BlockOrder  *domain.BlockOrder `json:"blockOrder"`
}

// reduceDocument combines the three document slices.
func reduceDocument(doc *Document, action domain.Action) *Document {
	var prev Document
	if doc != nil {
		prev = *doc
	}
	next := Document{
		Edits:       reduceEdits(prev.Edits, action),
		BlocksByUID: reduceBlocksByUID(prev.BlocksByUID, action),
		BlockOrder:  reduceBlockOrder(prev.BlockOrder, action),
	}
	if doc != nil && next == prev {
		return doc
	}
	return &next
}

// View exposes the present document of a history envelope.
type View struct {
	history *history.Envelope[*Document]
}

func newView(e *history.Envelope[*Document]) *View {
	return &View{history: e}
}

// History returns the underlying envelope.
func (v *View) History() *history.Envelope[*Document] {
	if v == nil {
		return nil
	}
	return v.history
}

// Document returns the present snapshot. A nil view has an empty document.
func (v *View) Document() *Document {
	if v == nil || v.history == nil || v.history.Present() == nil {
		return &Document{}
	}
	return v.history.Present()
}

// Edits returns the pending edits of the present snapshot.
func (v *View) Edits() *domain.Record { return v.Document().Edits }

// BlocksByUID returns the block index of the present snapshot.
func (v *View) BlocksByUID() *domain.BlockMap { return v.Document().BlocksByUID }

// BlockOrder returns the block order of the present snapshot.
func (v *View) BlockOrder() *domain.BlockOrder { return v.Document().BlockOrder }

// Blocks returns the present blocks in document order.
func (v *View) Blocks() []*domain.Block {
	order := v.BlockOrder()
	blocks := make([]*domain.Block, 0, order.Len())
	for i := 0; i < order.Len(); i++ {
		if b, ok := v.BlocksByUID().Get(order.At(i)); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// MarshalJSON encodes the view as its history envelope.
func (v *View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.history)
}

// UnmarshalJSON decodes a history envelope written by MarshalJSON.
func (v *View) UnmarshalJSON(data []byte) error {
	var e history.Envelope[*Document]
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	v.history = &e
	return nil
}

// reduceView keeps the document under undo/redo. Loading a post starts a
// fresh history.
var reduceView = history.Scope(reduceDocument, newView, history.WithResetTypes(domain.ActionResetPost))
