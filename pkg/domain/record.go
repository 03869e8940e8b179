package domain

import (
	"encoding/json"
	"sort"
)

// Record is an immutable string-keyed value map.
//
// A nil *Record reads as empty. Every write returns a new Record, or the
// receiver itself when the write would not change anything, so callers can
// detect no-ops by comparing pointers.
type Record struct {
	values map[string]any
}

// NewRecord copies values into a new Record.
func NewRecord(values map[string]any) *Record {
	r := &Record{values: make(map[string]any, len(values))}
	for k, v := range values {
		r.values[k] = v
	}
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value under key, or nil.
func (r *Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Keys returns the keys in sorted order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the underlying values.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Merge assigns only the entries of changes whose value differs (see Same)
// from the current one. The receiver is returned when nothing differs.
func (r *Record) Merge(changes map[string]any) *Record {
	next := r
	for k, v := range changes {
		if Same(v, r.Value(k)) {
			continue
		}
		if next == r {
			next = &Record{values: r.Map()}
		}
		next.values[k] = v
	}
	return next
}

// Set is Merge for a single key.
func (r *Record) Set(key string, value any) *Record {
	return r.Merge(map[string]any{key: value})
}

// Without drops keys. The receiver is returned when none of them is present.
func (r *Record) Without(keys ...string) *Record {
	next := r
	for _, k := range keys {
		if !r.Has(k) {
			continue
		}
		if next == r {
			next = &Record{values: r.Map()}
		}
		delete(next.values, k)
	}
	return next
}

// MarshalJSON encodes the record as a plain JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}

// UnmarshalJSON decodes a plain JSON object.
func (r *Record) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if values == nil {
		values = make(map[string]any)
	}
	r.values = values
	return nil
}
