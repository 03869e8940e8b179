package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDispatch EventType = "dispatch"
	EventUndo     EventType = "undo"
	EventRedo     EventType = "redo"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// DispatchEvent describes one action applied to a document.
type DispatchEvent struct {
	EventBase
	DocumentID string `json:"document_id,omitempty"`
	Action     string `json:"action"`
	// Changed is false when the action was a no-op for every slice.
	Changed bool `json:"changed"`
	// PastLen and FutureLen are the undo/redo depths after the action.
	PastLen   int `json:"past_len"`
	FutureLen int `json:"future_len"`
}

// LifecycleHooks defines callbacks for editor observability.
type LifecycleHooks struct {
	OnDispatch func(context.Context, *DispatchEvent)
	OnUndo     func(context.Context, *DispatchEvent)
	OnRedo     func(context.Context, *DispatchEvent)
}
