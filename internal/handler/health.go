package handler

import (
	"net/http"

	"github.com/vivekraina7/Windows-Error/internal/assistant"
	"github.com/vivekraina7/Windows-Error/internal/storage"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store     *storage.Store
	assistant *assistant.Assistant
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *storage.Store, asst *assistant.Assistant) *HealthHandler {
	return &HealthHandler{
		store:     store,
		assistant: asst,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"components": map[string]bool{
			"storage":   h.store != nil,
			"assistant": h.assistant != nil && h.assistant.Available(),
		},
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Ping(r.Context()) != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "storage not reachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
