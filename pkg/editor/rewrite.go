package editor

import (
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/history"
)

// MapPostRecords returns a copy of s with fn applied to the post mirror and
// to the pending edits of every snapshot in the document history. fn must
// return its input when it has nothing to change. s is not modified.
func (s *State) MapPostRecords(fn func(*domain.Record) *domain.Record) *State {
	next := *s
	next.CurrentPost = fn(s.CurrentPost)

	if s.Editor != nil && s.Editor.History() != nil {
		h := s.Editor.History()
		mapDoc := func(d *Document) *Document {
			if d == nil {
				return nil
			}
			edits := fn(d.Edits)
			if edits == d.Edits {
				return d
			}
			doc := *d
			doc.Edits = edits
			return &doc
		}
		mapAll := func(docs []*Document) []*Document {
			for i, d := range docs {
				docs[i] = mapDoc(d)
			}
			return docs
		}
		next.Editor = newView(history.Restore(mapAll(h.Past()), mapDoc(h.Present()), mapAll(h.Future())))
	}
	return &next
}
