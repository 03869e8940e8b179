package editor

import (
	"encoding/json"
	"slices"

	"github.com/aretw0/folium/pkg/domain"
)

// Notices is an immutable, ordered list of notices.
type Notices struct {
	items []*domain.Notice
}

// Items returns a copy of the notices, oldest first.
func (n *Notices) Items() []*domain.Notice {
	if n == nil {
		return nil
	}
	return slices.Clone(n.items)
}

// Len returns the number of notices.
func (n *Notices) Len() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

func (n *Notices) index(id string) int {
	if n == nil {
		return -1
	}
	return slices.IndexFunc(n.items, func(item *domain.Notice) bool { return item.ID == id })
}

func (n *Notices) without(id string) []*domain.Notice {
	return slices.DeleteFunc(n.Items(), func(item *domain.Notice) bool { return item.ID == id })
}

func reduceNotices(state *Notices, action domain.Action) *Notices {
	if state == nil {
		state = &Notices{}
	}
	switch action.Type {
	case domain.ActionCreateNotice:
		if action.Notice == nil {
			return state
		}
		return &Notices{items: append(state.without(action.Notice.ID), action.Notice)}
	case domain.ActionRemoveNotice:
		if state.index(action.NoticeID) < 0 {
			return state
		}
		return &Notices{items: state.without(action.NoticeID)}
	}
	return state
}

// MarshalJSON encodes the notices as a JSON array.
func (n Notices) MarshalJSON() ([]byte, error) {
	if n.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n.items)
}

// UnmarshalJSON decodes a JSON array of notices.
func (n *Notices) UnmarshalJSON(data []byte) error {
	var items []*domain.Notice
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	n.items = items
	return nil
}
