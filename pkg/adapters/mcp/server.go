package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/folium"
	"github.com/aretw0/folium/internal/sanitize"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentsURI is the resource listing every stored document.
const DocumentsURI = "folium://documents"

// Documents is the document access the server needs. *session.Manager
// satisfies it.
type Documents interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, documentID string) (*editor.State, error)
	Apply(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)
	Update(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)
}

// DocumentArgs identifies the target document of a tool call.
type DocumentArgs struct {
	DocumentID string `json:"document_id"`
}

// DispatchArgs are the arguments of the dispatch_actions tool.
type DispatchArgs struct {
	DocumentID string `json:"document_id"`
	// Actions is a JSON array of action objects.
	Actions string `json:"actions"`
}

// DocumentResult is returned by every tool.
type DocumentResult struct {
	DocumentID string        `json:"document_id"`
	Changed    bool          `json:"changed"`
	State      *editor.State `json:"state"`
}

// Server exposes folium documents as an MCP Server.
type Server struct {
	docs      Documents
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(docs Documents) *Server {
	s := &Server{
		docs:      docs,
		mcpServer: server.NewMCPServer("folium-mcp", strings.TrimSpace(folium.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("dispatch_actions",
		mcp.WithDescription("Apply a list of editor actions to a document, in order. Missing documents are created."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Target document ID")),
		mcp.WithString("actions", mcp.Required(), mcp.Description(`JSON array of actions, e.g. [{"type":"EDIT_POST","edits":{"title":"Hello"}}]`)),
	), mcp.NewStructuredToolHandler(s.handleDispatch))

	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the full state of a document, including its undo history."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document ID")),
	), mcp.NewStructuredToolHandler(s.handleGetDocument))

	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last document change."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document ID")),
	), mcp.NewStructuredToolHandler(s.handleUndo))

	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone document change."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("Document ID")),
	), mcp.NewStructuredToolHandler(s.handleRedo))
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest, args DispatchArgs) (DocumentResult, error) {
	input, err := sanitize.Input(args.Actions)
	if err != nil {
		slog.Warn("MCP Dispatch: Input rejected", "document_id", args.DocumentID, "err", err, "size", len(args.Actions))
		return DocumentResult{}, fmt.Errorf("input rejected: %w", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return DocumentResult{}, fmt.Errorf("%w: actions must be a JSON array: %v", domain.ErrInvalidAction, err)
	}
	actions, err := domain.DecodeActions(raw)
	if err != nil {
		slog.Warn("MCP Dispatch: Actions rejected", "document_id", args.DocumentID, "err", err)
		return DocumentResult{}, err
	}
	return s.apply(ctx, args.DocumentID, s.docs.Apply, actions...)
}

func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (DocumentResult, error) {
	state, err := s.docs.Load(ctx, args.DocumentID)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("load failed: %w", err)
	}
	return DocumentResult{DocumentID: args.DocumentID, State: state}, nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (DocumentResult, error) {
	return s.apply(ctx, args.DocumentID, s.docs.Update, domain.Action{Type: domain.ActionUndo})
}

func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (DocumentResult, error) {
	return s.apply(ctx, args.DocumentID, s.docs.Update, domain.Action{Type: domain.ActionRedo})
}

type applyFunc func(ctx context.Context, documentID string, actions ...domain.Action) (before, after *editor.State, err error)

func (s *Server) apply(ctx context.Context, documentID string, fn applyFunc, actions ...domain.Action) (DocumentResult, error) {
	if documentID == "" {
		return DocumentResult{}, domain.ErrEmptyDocumentID
	}
	before, after, err := fn(ctx, documentID, actions...)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("dispatch failed: %w", err)
	}
	return DocumentResult{DocumentID: documentID, Changed: before != after, State: after}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Stored Documents",
		mcp.WithMIMEType("application/json"),
	), s.readDocuments)
}

func (s *Server) readDocuments(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	jsonBytes, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocumentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrDocumentNotFound)
}
