package domain

import (
	"encoding/json"
	"slices"
	"sort"
)

// BlockMap is an immutable index of blocks by id. A nil *BlockMap is empty.
type BlockMap struct {
	blocks map[string]*Block
}

// NewBlockMap keys blocks by id. Later duplicates win; nil entries are skipped.
func NewBlockMap(blocks ...*Block) *BlockMap {
	m := &BlockMap{blocks: make(map[string]*Block, len(blocks))}
	for _, b := range blocks {
		if b != nil {
			m.blocks[b.ID] = b
		}
	}
	return m
}

// Get returns the block with the given id.
func (m *BlockMap) Get(uid string) (*Block, bool) {
	if m == nil {
		return nil, false
	}
	b, ok := m.blocks[uid]
	return b, ok
}

// Has reports whether uid is present.
func (m *BlockMap) Has(uid string) bool {
	_, ok := m.Get(uid)
	return ok
}

// Len returns the number of blocks.
func (m *BlockMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.blocks)
}

// UIDs returns the block ids in sorted order.
func (m *BlockMap) UIDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.blocks))
	for id := range m.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// With returns a copy of m with blocks added or overwritten.
// The receiver is returned when blocks is empty.
func (m *BlockMap) With(blocks ...*Block) *BlockMap {
	if len(blocks) == 0 {
		return m
	}
	next := m.clone()
	for _, b := range blocks {
		if b != nil {
			next.blocks[b.ID] = b
		}
	}
	return next
}

// Without returns a copy of m minus uids, or m itself when none is present.
func (m *BlockMap) Without(uids ...string) *BlockMap {
	next := m
	for _, uid := range uids {
		if !m.Has(uid) {
			continue
		}
		if next == m {
			next = m.clone()
		}
		delete(next.blocks, uid)
	}
	return next
}

func (m *BlockMap) clone() *BlockMap {
	next := &BlockMap{blocks: make(map[string]*Block, m.Len())}
	if m != nil {
		for k, v := range m.blocks {
			next.blocks[k] = v
		}
	}
	return next
}

// MarshalJSON encodes the map as a JSON object keyed by id.
func (m BlockMap) MarshalJSON() ([]byte, error) {
	if m.blocks == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.blocks)
}

// UnmarshalJSON decodes a JSON object keyed by id.
func (m *BlockMap) UnmarshalJSON(data []byte) error {
	var blocks map[string]*Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	if blocks == nil {
		blocks = make(map[string]*Block)
	}
	m.blocks = blocks
	return nil
}

// BlockOrder is an immutable ordered list of block ids. A nil *BlockOrder is
// empty.
type BlockOrder struct {
	uids []string
}

// NewBlockOrder copies uids into a new order.
func NewBlockOrder(uids ...string) *BlockOrder {
	return &BlockOrder{uids: slices.Clone(uids)}
}

// UIDs returns a copy of the ids, in order.
func (o *BlockOrder) UIDs() []string {
	if o == nil {
		return []string{}
	}
	return slices.Clone(o.uids)
}

// Len returns the number of ids.
func (o *BlockOrder) Len() int {
	if o == nil {
		return 0
	}
	return len(o.uids)
}

// At returns the id at index i.
func (o *BlockOrder) At(i int) string {
	return o.uids[i]
}

// Index returns the position of uid, or -1.
func (o *BlockOrder) Index(uid string) int {
	if o == nil {
		return -1
	}
	return slices.Index(o.uids, uid)
}

// First returns the first id, or "" when empty.
func (o *BlockOrder) First() string {
	if o.Len() == 0 {
		return ""
	}
	return o.uids[0]
}

// Last returns the last id, or "" when empty.
func (o *BlockOrder) Last() string {
	if o.Len() == 0 {
		return ""
	}
	return o.uids[len(o.uids)-1]
}

// MarshalJSON encodes the order as a JSON array.
func (o BlockOrder) MarshalJSON() ([]byte, error) {
	if o.uids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o.uids)
}

// UnmarshalJSON decodes a JSON array of ids.
func (o *BlockOrder) UnmarshalJSON(data []byte) error {
	var uids []string
	if err := json.Unmarshal(data, &uids); err != nil {
		return err
	}
	o.uids = uids
	return nil
}
