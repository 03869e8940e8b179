package folium

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/folium/internal/logging"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
)

// State is the root editor state.
type State = editor.State

// Editor is the high-level entry point for the folium library.
// It holds one document's state and applies actions to it one at a time.
// Safe for concurrent use.
type Editor struct {
	mu         sync.RWMutex
	state      *editor.State
	reduce     editor.Transition
	blockTypes editor.BlockTypes
	documentID string
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithBlockTypes sets the registry consulted by SETUP_EDITOR.
func WithBlockTypes(types editor.BlockTypes) Option {
	return func(e *Editor) {
		e.blockTypes = types
	}
}

// WithState seeds the editor with a previously saved state.
// A nil state leaves the editor at its initial state.
func WithState(state *editor.State) Option {
	return func(e *Editor) {
		e.state = state
	}
}

// WithDocumentID labels events and log lines with a document ID.
func WithDocumentID(id string) Option {
	return func(e *Editor) {
		e.documentID = id
	}
}

// New initializes an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.documentID != "" {
		e.logger = e.logger.With("document_id", e.documentID)
	}

	e.reduce = editor.New(e.blockTypes)
	if e.state == nil {
		e.state = e.reduce(nil, domain.Action{})
	}
	return e
}

// State returns the current state. States are immutable and may be kept.
func (e *Editor) State() *editor.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Dispatch applies actions in order, each to completion before the next.
// It returns the resulting state and whether any action changed it.
func (e *Editor) Dispatch(ctx context.Context, actions ...domain.Action) (*editor.State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.state
	for _, action := range actions {
		e.apply(ctx, action)
	}
	return e.state, e.state != start
}

// Undo steps the document back. It reports false when there is no past.
func (e *Editor) Undo(ctx context.Context) (*editor.State, bool) {
	return e.Dispatch(ctx, domain.Action{Type: domain.ActionUndo})
}

// Redo re-applies the last undone change. It reports false when there is no
// future.
func (e *Editor) Redo(ctx context.Context) (*editor.State, bool) {
	return e.Dispatch(ctx, domain.Action{Type: domain.ActionRedo})
}

// apply runs one action. Callers must hold e.mu.
func (e *Editor) apply(ctx context.Context, action domain.Action) {
	prev := e.state
	if action.Type == domain.ActionUpdateBlock {
		if b, ok := prev.Block(action.UID); ok {
			if err := domain.DecodeBlockUpdates(b, action.Updates); err != nil {
				e.logger.Debug("Block update partially applied", "uid", action.UID, "err", err)
			}
		}
	}
	e.state = e.reduce(prev, action)
	changed := e.state != prev

	e.logger.Debug("Action dispatched", "action", action.Type, "changed", changed)

	hook, eventType := e.hooks.OnDispatch, domain.EventDispatch
	switch action.Type {
	case domain.ActionUndo:
		hook, eventType = e.hooks.OnUndo, domain.EventUndo
	case domain.ActionRedo:
		hook, eventType = e.hooks.OnRedo, domain.EventRedo
	}
	if hook == nil {
		return
	}

	h := e.state.Editor.History()
	hook(ctx, &domain.DispatchEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      eventType,
		},
		DocumentID: e.documentID,
		Action:     action.Type,
		Changed:    changed,
		PastLen:    h.PastLen(),
		FutureLen:  h.FutureLen(),
	})
}
