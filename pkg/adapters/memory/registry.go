package memory

import (
	"slices"
	"sync"
)

// CategoryCommon is the category whose types seed the recent blocks list.
const CategoryCommon = "common"

// BlockType describes one registered block type.
type BlockType struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Category string `json:"category,omitempty" yaml:"category,omitempty" mapstructure:"category"`
}

// Registry implements editor.BlockTypes over a static list.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types []BlockType
}

// NewRegistry creates a registry holding types, in order.
func NewRegistry(types ...BlockType) *Registry {
	r := &Registry{}
	r.Register(types...)
	return r
}

// Register adds types. A type already registered under the same name is replaced
// in place.
func (r *Registry) Register(types ...BlockType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		if i := r.index(t.Name); i >= 0 {
			r.types[i] = t
			continue
		}
		r.types = append(r.types, t)
	}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index(name) >= 0
}

// Common returns the names of the common types, in registration order.
func (r *Registry) Common() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for _, t := range r.types {
		if t.Category == CategoryCommon {
			names = append(names, t.Name)
		}
	}
	return names
}

// Types returns a copy of the registered types.
func (r *Registry) Types() []BlockType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.types)
}

func (r *Registry) index(name string) int {
	return slices.IndexFunc(r.types, func(t BlockType) bool { return t.Name == name })
}
