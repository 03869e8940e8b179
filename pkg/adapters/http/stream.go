package http

import (
	"log/slog"
	"sync"
)

// StreamManager handles active SSE connections, grouped by document.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // DocumentID -> Set of Channels
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a buffered channel for documentID. The returned
// function unregisters and closes it.
func (sm *StreamManager) Subscribe(documentID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[documentID]; !ok {
		sm.subscribers[documentID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[documentID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[documentID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, documentID)
			}
		}
	}
}

// Subscribers returns the number of open streams for documentID.
func (sm *StreamManager) Subscribers(documentID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[documentID])
}

// Broadcast sends msg to every subscriber of documentID without blocking.
func (sm *StreamManager) Broadcast(documentID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	slog.Debug("StreamManager: Broadcasting", "document_id", documentID, "payload_size", len(msg))

	for ch := range sm.subscribers[documentID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: Client buffer full, dropping message", "document_id", documentID)
		}
	}
}
