package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks post fields and pending edits whose key matches one
// of the patterns, nested maps included, before they reach the store. The
// caller's state is left untouched. It panics on an invalid pattern.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, documentID string, state *editor.State) error {
	return m.next.Save(ctx, documentID, state.MapPostRecords(m.mask))
}

func (m *piiMiddleware) Load(ctx context.Context, documentID string) (*editor.State, error) {
	return m.next.Load(ctx, documentID)
}

func (m *piiMiddleware) Delete(ctx context.Context, documentID string) error {
	return m.next.Delete(ctx, documentID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) mask(r *domain.Record) *domain.Record {
	changes := make(map[string]any)
	for _, k := range r.Keys() {
		if masked, ok := m.maskValue(k, r.Value(k)); ok {
			changes[k] = masked
		}
	}
	return r.Merge(changes)
}

// maskValue returns the masked form of v and whether it differs from v.
func (m *piiMiddleware) maskValue(key string, v any) (any, bool) {
	if m.matches(key) {
		return Mask, v != Mask
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return v, false
	}
	var out map[string]any
	for k, inner := range sub {
		masked, changed := m.maskValue(k, inner)
		if !changed {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(sub))
			for k2, v2 := range sub {
				out[k2] = v2
			}
		}
		out[k] = masked
	}
	if out == nil {
		return v, false
	}
	return out, true
}

func (m *piiMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
