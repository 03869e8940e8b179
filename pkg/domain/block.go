package domain

import (
	"fmt"
	"strings"
)

// Block is one addressable content unit of a document.
//
// Blocks are values: once built they are never modified. Transitions that
// change a block produce a new *Block and keep the old one untouched.
type Block struct {
	ID              string  `json:"id" yaml:"id" mapstructure:"id"`
	Name            string  `json:"name" yaml:"name" mapstructure:"name"`
	Attributes      *Record `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
	IsValid         bool    `json:"isValid" yaml:"isValid" mapstructure:"isValid"`
	OriginalContent string  `json:"originalContent,omitempty" yaml:"originalContent,omitempty" mapstructure:"originalContent"`

	// Extra holds fields with no dedicated member.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty" mapstructure:"-"`
}

// NewBlock creates a valid block of the given type.
func NewBlock(id, name string, attributes map[string]any) *Block {
	return &Block{
		ID:         id,
		Name:       name,
		Attributes: NewRecord(attributes),
		IsValid:    true,
	}
}

// Clone returns a shallow copy. Attributes are shared; Extra is copied.
func (b *Block) Clone() *Block {
	next := *b
	if b.Extra != nil {
		next.Extra = make(map[string]any, len(b.Extra))
		for k, v := range b.Extra {
			next.Extra[k] = v
		}
	}
	return &next
}

// WithAttributes returns a copy of b carrying attrs, or b itself when attrs
// is already its attribute record.
func (b *Block) WithAttributes(attrs *Record) *Block {
	if attrs == b.Attributes {
		return b
	}
	next := b.Clone()
	next.Attributes = attrs
	return next
}

// blockFields are the update keys decoded into Block fields.
var blockFields = []string{"id", "name", "attributes", "isValid", "originalContent"}

// Apply shallow-merges updates onto a copy of b. Known keys land on their
// fields (an "attributes" map replaces the whole record); the rest go to
// Extra. A new block is returned even when the updates match b.
//
// Updates are partially applied: a known key whose value does not convert
// to its field (a map for "name", say) keeps b's value for that field, and
// every other key is still merged. Use DecodeBlockUpdates to see the error.
func (b *Block) Apply(updates map[string]any) *Block {
	next, _ := b.decodeUpdates(updates)
	return next
}

// DecodeBlockUpdates reports whether updates convert cleanly onto b's fields.
func DecodeBlockUpdates(b *Block, updates map[string]any) error {
	_, err := b.decodeUpdates(updates)
	return err
}

func (b *Block) decodeUpdates(updates map[string]any) (*Block, error) {
	next := b.Clone()
	err := decode(updates, next)
	for key, value := range updates {
		if isBlockField(key) {
			continue
		}
		if next.Extra == nil {
			next.Extra = make(map[string]any)
		}
		next.Extra[key] = value
	}
	if err != nil {
		return next, fmt.Errorf("%w: block %q: %v", ErrInvalidAction, b.ID, err)
	}
	return next, nil
}

func isBlockField(key string) bool {
	for _, field := range blockFields {
		if strings.EqualFold(key, field) {
			return true
		}
	}
	return false
}

// BlockIDs returns the ids of blocks, in order.
func BlockIDs(blocks []*Block) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		ids = append(ids, b.ID)
	}
	return ids
}
