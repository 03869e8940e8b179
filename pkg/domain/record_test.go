package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_NilIsEmpty(t *testing.T) {
	var r *Record
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has("a"))
	assert.Nil(t, r.Value("a"))
	assert.Empty(t, r.Keys())
	assert.Equal(t, map[string]any{}, r.Map())
}

func TestRecord_MergeOnlyChangedKeys(t *testing.T) {
	r := NewRecord(map[string]any{"title": "a", "status": "draft"})

	same := r.Merge(map[string]any{"title": "a"})
	assert.Same(t, r, same, "merging equal values must return the receiver")

	next := r.Merge(map[string]any{"title": "b", "status": "draft"})
	assert.NotSame(t, r, next)
	assert.Equal(t, "b", next.Value("title"))
	assert.Equal(t, "draft", next.Value("status"))
	assert.Equal(t, "a", r.Value("title"), "receiver must not be modified")
}

func TestRecord_MergeAbsentKeyWithNil(t *testing.T) {
	r := NewRecord(nil)
	assert.Same(t, r, r.Merge(map[string]any{"missing": nil}))
}

func TestRecord_MergeComparesMapsByIdentity(t *testing.T) {
	inner := map[string]any{"x": 1}
	r := NewRecord(map[string]any{"meta": inner})

	assert.Same(t, r, r.Merge(map[string]any{"meta": inner}))
	assert.NotSame(t, r, r.Merge(map[string]any{"meta": map[string]any{"x": 1}}))
}

func TestRecord_Without(t *testing.T) {
	r := NewRecord(map[string]any{"content": "x", "title": "t"})

	assert.Same(t, r, r.Without("nope"))

	next := r.Without("content")
	assert.False(t, next.Has("content"))
	assert.True(t, r.Has("content"))
	assert.Equal(t, []string{"title"}, next.Keys())
}

func TestRecord_JSON(t *testing.T) {
	r := NewRecord(map[string]any{"a": "b"})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "b", back.Value("a"))
}
