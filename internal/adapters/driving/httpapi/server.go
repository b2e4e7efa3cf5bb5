// Package httpapi exposes the question answering pipeline over HTTP.
//
// Endpoints:
//   - POST /ask {"query": "..."} returns {"response": "..."}
//   - POST /retrieve {"query": "...", "k": 5} returns ranked chunks
//   - GET /healthz returns service status
//
// Error mapping:
//   - 400 for malformed requests and empty queries
//   - 502 when answer generation fails
//   - 503 when no index is available
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// ReadHeaderTimeout bounds how long reading request headers may take.
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Server serves the question answering API.
type Server struct {
	cfg       Config
	asker     driving.AskService
	retriever driving.RetrievalService
}

// NewServer creates a new API server.
func NewServer(cfg Config, asker driving.AskService, retriever driving.RetrievalService) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = DefaultConfig().ReadHeaderTimeout
	}

	return &Server{
		cfg:       cfg,
		asker:     asker,
		retriever: retriever,
	}
}

// Handler returns the HTTP handler serving all API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/retrieve", s.handleRetrieve)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run starts the server and blocks until the context is cancelled or an
// error occurs.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", s.cfg.Addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Response      string `json:"response"`
	ContextChunks int    `json:"context_chunks"`
	Model         string `json:"model,omitempty"`
}

// handleAsk answers a question grounded in the indexed corpus.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	exchange, err := s.asker.Ask(r.Context(), req.Query)
	if err != nil {
		status, msg := mapError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Response:      exchange.Answer,
		ContextChunks: exchange.ContextChunks,
		Model:         exchange.Model,
	})
}

type retrieveRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type retrievedChunk struct {
	Text       string  `json:"text"`
	SourcePage int     `json:"source_page"`
	Similarity float64 `json:"similarity"`
}

// handleRetrieve returns the ranked chunks for a query without
// generating an answer.
func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	hits, err := s.retriever.Retrieve(r.Context(), req.Query, req.K)
	if err != nil {
		status, msg := mapError(err)
		writeError(w, status, msg)
		return
	}

	chunks := make([]retrievedChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = retrievedChunk{
			Text:       hit.Chunk.Text,
			SourcePage: hit.Chunk.SourcePage,
			Similarity: hit.Similarity,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"chunks": chunks})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mapError translates domain errors into HTTP status codes.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrIndexNotFound),
		errors.Is(err, domain.ErrCorruptIndex),
		errors.Is(err, domain.ErrModelMismatch):
		return http.StatusServiceUnavailable, "index unavailable"
	case errors.Is(err, domain.ErrGeneration):
		return http.StatusBadGateway, "answer generation failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
