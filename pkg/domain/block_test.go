package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock_WithAttributes(t *testing.T) {
	b := NewBlock("chicken", "core/test-block", map[string]any{"content": "a"})

	assert.Same(t, b, b.WithAttributes(b.Attributes))

	next := b.WithAttributes(b.Attributes.Set("content", "b"))
	assert.NotSame(t, b, next)
	assert.Equal(t, "b", next.Attributes.Value("content"))
	assert.Equal(t, "a", b.Attributes.Value("content"))
}

func TestBlock_ApplyAlwaysAllocates(t *testing.T) {
	b := NewBlock("chicken", "core/test-block", nil)
	next := b.Apply(map[string]any{"name": "core/test-block"})
	assert.NotSame(t, b, next)
	assert.Equal(t, b.Name, next.Name)
}

func TestBlock_ApplyMergesFields(t *testing.T) {
	b := NewBlock("chicken", "core/test-block", map[string]any{"content": "x"})
	b.Extra = map[string]any{"clientId": 1}

	next := b.Apply(map[string]any{
		"isValid":    false,
		"attributes": map[string]any{"ref": 7},
		"reusable":   true,
	})

	assert.False(t, next.IsValid)
	assert.Equal(t, "chicken", next.ID)
	assert.Equal(t, "core/test-block", next.Name)
	assert.Equal(t, 7, next.Attributes.Value("ref"))
	assert.False(t, next.Attributes.Has("content"), "attributes are replaced, not merged")
	assert.Equal(t, true, next.Extra["reusable"])
	assert.Equal(t, 1, next.Extra["clientId"])

	assert.True(t, b.IsValid, "original block must not be modified")
	assert.NotContains(t, b.Extra, "reusable")
	assert.Equal(t, "x", b.Attributes.Value("content"))
}

func TestBlock_ApplyKeepsFieldsThatFailToDecode(t *testing.T) {
	b := NewBlock("chicken", "core/test-block", nil)
	updates := map[string]any{
		"name":     map[string]any{"not": "a name"},
		"isValid":  false,
		"reusable": true,
	}

	next := b.Apply(updates)

	assert.Equal(t, "core/test-block", next.Name)
	assert.False(t, next.IsValid)
	assert.Equal(t, true, next.Extra["reusable"])
	assert.NotContains(t, next.Extra, "name")

	err := DecodeBlockUpdates(b, updates)
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.NoError(t, DecodeBlockUpdates(b, map[string]any{"isValid": false}))
}

func TestBlockIDs(t *testing.T) {
	ids := BlockIDs([]*Block{{ID: "a"}, nil, {ID: "b"}})
	assert.Equal(t, []string{"a", "b"}, ids)
}
