package history

import "github.com/aretw0/folium/pkg/domain"

// View is an outer value backed by a history envelope.
// Implementations expose the fields of the present snapshot as accessors.
type View[S comparable] interface {
	comparable
	History() *Envelope[S]
}

// Scope wraps t with history and rebuilds the outer view with build whenever
// the envelope changes. When an action leaves the envelope untouched, the
// incoming view is returned as is. The zero view stands for the initial one.
func Scope[S comparable, V View[S]](t Transition[S], build func(*Envelope[S]) V, opts ...Option) Transition[V] {
	wrapped := Wrap(t, opts...)
	initial := build(wrapped(nil, domain.Action{}))

	return func(v V, action domain.Action) V {
		var zero V
		if v == zero {
			v = initial
		}
		prev := v.History()
		next := wrapped(prev, action)
		if next == prev {
			return v
		}
		return build(next)
	}
}
