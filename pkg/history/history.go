package history

import (
	"encoding/json"
	"slices"

	"github.com/aretw0/folium/pkg/domain"
)

// Transition is a pure state-transition function.
// It must return its input unchanged when the action does not apply.
type Transition[S comparable] func(state S, action domain.Action) S

// Envelope holds the undo history around a present snapshot.
// Envelopes are immutable; every change produces a new one.
type Envelope[S comparable] struct {
	past    []S // oldest first
	present S
	future  []S // nearest redo first
}

// New returns an envelope with no history around present.
func New[S comparable](present S) *Envelope[S] {
	return &Envelope[S]{present: present}
}

// Restore builds an envelope from existing stacks. past is oldest first and
// future is nearest redo first. The slices are copied.
func Restore[S comparable](past []S, present S, future []S) *Envelope[S] {
	return &Envelope[S]{past: slices.Clone(past), present: present, future: slices.Clone(future)}
}

// Present returns the current snapshot.
func (e *Envelope[S]) Present() S {
	return e.present
}

// Past returns a copy of the undo stack, oldest first.
func (e *Envelope[S]) Past() []S {
	return slices.Clone(e.past)
}

// Future returns a copy of the redo stack, nearest first.
func (e *Envelope[S]) Future() []S {
	return slices.Clone(e.future)
}

// PastLen returns the number of undoable steps.
func (e *Envelope[S]) PastLen() int {
	if e == nil {
		return 0
	}
	return len(e.past)
}

// FutureLen returns the number of redoable steps.
func (e *Envelope[S]) FutureLen() int {
	if e == nil {
		return 0
	}
	return len(e.future)
}

// CanUndo reports whether UNDO would change the envelope.
func (e *Envelope[S]) CanUndo() bool { return e.PastLen() > 0 }

// CanRedo reports whether REDO would change the envelope.
func (e *Envelope[S]) CanRedo() bool { return e.FutureLen() > 0 }

func (e *Envelope[S]) undo() *Envelope[S] {
	n := len(e.past)
	if n == 0 {
		return e
	}
	future := make([]S, 0, len(e.future)+1)
	future = append(future, e.present)
	future = append(future, e.future...)
	return &Envelope[S]{
		past:    slices.Clip(e.past[:n-1]),
		present: e.past[n-1],
		future:  future,
	}
}

func (e *Envelope[S]) redo() *Envelope[S] {
	if len(e.future) == 0 {
		return e
	}
	return &Envelope[S]{
		past:    append(slices.Clip(e.past), e.present),
		present: e.future[0],
		future:  e.future[1:],
	}
}

// Option configures Wrap.
type Option func(*config)

type config struct {
	resetTypes map[string]struct{}
}

// WithResetTypes lists action types that discard all history.
// A reset action truncates past and future even when it changes nothing.
func WithResetTypes(types ...string) Option {
	return func(c *config) {
		for _, t := range types {
			c.resetTypes[t] = struct{}{}
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{resetTypes: make(map[string]struct{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) isReset(actionType string) bool {
	_, ok := c.resetTypes[actionType]
	return ok
}

// Wrap returns a transition over envelopes of t's state.
//
// The initial envelope holds t(zero, Action{}) and is computed once; a nil
// envelope is treated as that initial value. UNDO and REDO move snapshots
// between the stacks and are no-ops at either end. Any other action is fed
// to t: reset types start a fresh history, an unchanged present returns the
// same envelope, and a change pushes the old present and clears the future.
func Wrap[S comparable](t Transition[S], opts ...Option) Transition[*Envelope[S]] {
	cfg := newConfig(opts)
	var zero S
	initial := New(t(zero, domain.Action{}))

	return func(e *Envelope[S], action domain.Action) *Envelope[S] {
		if e == nil {
			e = initial
		}

		switch action.Type {
		case domain.ActionUndo:
			return e.undo()
		case domain.ActionRedo:
			return e.redo()
		}

		next := t(e.present, action)

		if cfg.isReset(action.Type) {
			return New(next)
		}
		if next == e.present {
			return e
		}
		return &Envelope[S]{
			past:    append(slices.Clip(e.past), e.present),
			present: next,
		}
	}
}

type envelopeJSON[S comparable] struct {
	Past    []S `json:"past"`
	Present S   `json:"present"`
	Future  []S `json:"future"`
}

// MarshalJSON encodes the envelope as {"past", "present", "future"}.
func (e *Envelope[S]) MarshalJSON() ([]byte, error) {
	past, future := e.past, e.future
	if past == nil {
		past = []S{}
	}
	if future == nil {
		future = []S{}
	}
	return json.Marshal(envelopeJSON[S]{Past: past, Present: e.present, Future: future})
}

// UnmarshalJSON decodes an envelope written by MarshalJSON.
func (e *Envelope[S]) UnmarshalJSON(data []byte) error {
	var raw envelopeJSON[S]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.past, e.present, e.future = raw.Past, raw.Present, raw.Future
	return nil
}
