// Package ingest is the HTTP endpoint webhooks are pointed at. Any POST
// with a JSON body is stored; a small REST surface lists and deletes what
// was received.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/tracing"
)

// DefaultMaxBodyBytes caps request bodies when HandlerConfig leaves it unset.
const DefaultMaxBodyBytes int64 = 10 << 20

// Handler serves the ingestion and REST endpoints.
type Handler struct {
	svc     *payload.Service
	maxBody int64
	cors    config.CORSConfig
	tracer  trace.Tracer
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	// Service stores payloads (required).
	Service *payload.Service
	// MaxBodyBytes limits POST bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// CORS is applied to every response.
	CORS config.CORSConfig
	// Tracer wraps each request in a span. Nil disables tracing.
	Tracer trace.Tracer
}

// NewHandler creates a Handler from cfg.
func NewHandler(cfg HandlerConfig) *Handler {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handler{
		svc:     cfg.Service,
		maxBody: maxBody,
		cors:    cfg.CORS,
		tracer:  cfg.Tracer,
	}
}

// Routes returns the handler with CORS and tracing applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /payloads", h.List)
	mux.HandleFunc("GET /payloads/{id}", h.Get)
	mux.HandleFunc("DELETE /payloads/{id}", h.Delete)
	mux.HandleFunc("DELETE /payloads", h.Clear)

	// Webhooks may post to any path.
	mux.HandleFunc("POST /", h.Ingest)

	return tracing.HTTPMiddleware(h.tracer)(corsMiddleware(h.cors)(mux))
}

// === Response Types ===

// PayloadResponse is the JSON form of a stored payload.
type PayloadResponse struct {
	ID         string          `json:"id"`
	ReceivedAt time.Time       `json:"received_at"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body"`
}

// ListPayloadsResponse is the response body for GET /payloads.
type ListPayloadsResponse struct {
	Payloads []PayloadResponse `json:"payloads"`
	Total    int               `json:"total"`
}

// ClearResponse is the response body for DELETE /payloads.
type ClearResponse struct {
	Removed int `json:"removed"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Payloads int    `json:"payloads"`
}

// ErrorResponse is the response body for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// === Handlers ===

// Ingest stores the request body and greets the sender with it.
// POST /{path...}
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(w, r, http.StatusRequestEntityTooLarge, "body_too_large", "Payload too large",
				fmt.Sprintf("limit is %d bytes", tooLarge.Limit), err)
			return
		}
		h.reject(w, r, http.StatusBadRequest, "read_failed", "Failed to read request body", err.Error(), err)
		return
	}

	p, err := h.svc.Add(ctx, r.URL.Path, body)
	switch {
	case errors.Is(err, payload.ErrEmptyBody):
		h.reject(w, r, http.StatusBadRequest, "empty_body", "Request body is empty", "", err)
		return
	case errors.Is(err, payload.ErrInvalidJSON):
		h.reject(w, r, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON", err.Error(), err)
		return
	case err != nil:
		log.ErrorErr(log.CatServer, "Failed to store payload", err, "path", r.URL.Path)
		h.reject(w, r, http.StatusInternalServerError, "internal", "Failed to store payload", err.Error(), err)
		return
	}

	tracing.RecordStored(ctx, p.ID, p.Path, p.Size())
	log.Debug(log.CatServer, "Received payload", "id", p.ID, "path", p.Path, "bytes", p.Size())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "hello %s!", p.Body)
}

// List returns stored payloads, newest first.
// GET /payloads?limit=n
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer", s)
			return
		}
		limit = n
	}

	payloads, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", "Failed to list payloads", err.Error())
		return
	}
	total, err := h.svc.Count(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", "Failed to count payloads", err.Error())
		return
	}

	resp := ListPayloadsResponse{
		Payloads: make([]PayloadResponse, 0, len(payloads)),
		Total:    total,
	}
	for _, p := range payloads {
		resp.Payloads = append(resp.Payloads, toResponse(p))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Get returns one payload.
// GET /payloads/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if payload.IsNotFound(err) {
			h.writeError(w, http.StatusNotFound, "not_found", "Payload not found", "")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "internal", "Failed to get payload", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(p))
}

// Delete removes one payload.
// DELETE /payloads/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		if payload.IsNotFound(err) {
			h.writeError(w, http.StatusNotFound, "not_found", "Payload not found", "")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "internal", "Failed to delete payload", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear removes every payload.
// DELETE /payloads
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Clear(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", "Failed to clear payloads", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, ClearResponse{Removed: n})
}

// Health reports liveness and the stored payload count.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded"})
		return
	}
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Payloads: n})
}

// === Helpers ===

func toResponse(p *payload.Payload) PayloadResponse {
	return PayloadResponse{
		ID:         p.ID,
		ReceivedAt: p.ReceivedAt,
		Path:       p.Path,
		Body:       p.Body,
	}
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, status int, code, message, details string, err error) {
	tracing.RecordRejected(r.Context(), code, err)
	log.Debug(log.CatServer, "Rejected payload", "path", r.URL.Path, "code", code)
	h.writeError(w, status, code, message, details)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(log.CatServer, "Failed to encode JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}
