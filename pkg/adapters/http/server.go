package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/folium"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodySize bounds the size of an action list.
const MaxBodySize = 1 << 20

// Documents is the document access the server needs. *session.Manager
// satisfies it.
type Documents interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, documentID string) (*editor.State, error)
	Delete(ctx context.Context, documentID string) error
	Apply(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)
	Update(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)
}

// DispatchResponse is returned by the action, undo and redo endpoints.
type DispatchResponse struct {
	Changed bool          `json:"changed"`
	State   *editor.State `json:"state"`
}

// Server serves documents over HTTP and streams their changes over SSE.
type Server struct {
	Documents Documents
	Streams   *StreamManager
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the documents.
func NewHandler(docs Documents, opts ...Option) http.Handler {
	server := &Server{
		Documents: docs,
		Streams:   NewStreamManager(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	return server.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDocument)
			r.Delete("/", s.DeleteDocument)
			r.Post("/actions", s.DispatchActions)
			r.Post("/undo", s.Undo)
			r.Post("/redo", s.Redo)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "folium-http",
		"version": strings.TrimSpace(folium.Version),
	})
}

// ListDocuments handles the GET /documents request.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Documents.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("List failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetDocument handles the GET /documents/{id} request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := s.Documents.Load(r.Context(), id)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Load failed", "document_id", id, "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// DeleteDocument handles the DELETE /documents/{id} request.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Documents.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Delete failed", "document_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DispatchActions handles the POST /documents/{id}/actions request. The body
// is a JSON array of actions, applied in order.
func (s *Server) DispatchActions(w http.ResponseWriter, r *http.Request) {
	var raw []map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("DispatchActions: Invalid request body", "err", err)
		return
	}
	actions, err := domain.DecodeActions(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.logger.Warn("DispatchActions: Invalid action", "err", err)
		return
	}
	s.apply(w, r, s.Documents.Apply, actions...)
}

// Undo handles the POST /documents/{id}/undo request. Unknown documents
// get a 404.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, s.Documents.Update, domain.Action{Type: domain.ActionUndo})
}

// Redo handles the POST /documents/{id}/redo request. Unknown documents
// get a 404.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, s.Documents.Update, domain.Action{Type: domain.ActionRedo})
}

type applyFunc func(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)

func (s *Server) apply(w http.ResponseWriter, r *http.Request, fn applyFunc, actions ...domain.Action) {
	id := chi.URLParam(r, "id")
	before, after, err := fn(r.Context(), id, actions...)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Dispatch error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Dispatch failed", "document_id", id, "err", err)
		return
	}

	// Calculate and Broadcast Diff
	diff := editor.Diff(id, before, after)
	if !diff.IsEmpty() {
		if bytes, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(bytes))
		}
	}

	s.writeJSON(w, http.StatusOK, DispatchResponse{Changed: before != after, State: after})
}

// SubscribeEvents handles the GET /documents/{id}/events request (SSE).
// The optional watch parameter is a comma separated list of diff sections
// (blocks, order, edits, post, selection, hovered, history); diffs touching
// none of them are skipped.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		watchList = strings.Split(watch, ",")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Info("SSE: Subscribing to Document Updates", "document_id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "document_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !watches(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// watches reports whether the encoded diff touches any watched section.
// Undecodable messages are always sent.
func watches(msg string, watchList []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "blocks":
			if len(diff.Blocks) > 0 {
				return true
			}
		case "order":
			if diff.BlockOrder != nil {
				return true
			}
		case "edits":
			if len(diff.Edits) > 0 {
				return true
			}
		case "post":
			if len(diff.Post) > 0 {
				return true
			}
		case "selection":
			if diff.Selection != nil {
				return true
			}
		case "hovered":
			if diff.Hovered != nil {
				return true
			}
		case "history":
			if diff.History != nil {
				return true
			}
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
