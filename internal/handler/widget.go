package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/internal/chat"
	"github.com/vivekraina7/Windows-Error/internal/middleware"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
	"github.com/vivekraina7/Windows-Error/pkg/metrics"
)

// widgetSession pairs a chat session with the snapshot surface it renders to.
type widgetSession struct {
	session *chat.Session
	surface *snapshotSurface
}

// WidgetHandler hosts chat widget sessions for polling pages. Each session
// wraps a chat.Session around a snapshot surface; pages poll the snapshot
// and apply it to their DOM.
type WidgetHandler struct {
	sender          chat.Sender
	logger          *logger.Logger
	escalationDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*widgetSession
}

// NewWidgetHandler creates a widget session host. Messages submitted to a
// session are forwarded through the given sender.
func NewWidgetHandler(sender chat.Sender, escalationDelay time.Duration, log *logger.Logger) *WidgetHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &WidgetHandler{
		sender:          sender,
		logger:          log,
		escalationDelay: escalationDelay,
		sessions:        make(map[string]*widgetSession),
	}
}

type createWidgetRequest struct {
	ConversationID string `json:"conversation_id"`
	ErrorCode      string `json:"error_code"`
}

type createWidgetResponse struct {
	ConversationID string          `json:"conversation_id"`
	ErrorCode      string          `json:"error_code"`
	Surface        SurfaceSnapshot `json:"surface"`
}

// Create handles POST /api/v1/widget
func (h *WidgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ConversationID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate conversation id")
			return
		}
		req.ConversationID = id.String()
	}
	if err := middleware.ValidateConversationID(req.ConversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateErrorCode(req.ErrorCode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	surface := newSnapshotSurface()
	session := chat.NewSession(req.ConversationID, req.ErrorCode, h.sender, surface, h.logger,
		chat.WithEscalationDelay(h.escalationDelay))

	h.mu.Lock()
	if _, exists := h.sessions[req.ConversationID]; exists {
		h.mu.Unlock()
		writeError(w, http.StatusConflict, "widget session already exists")
		return
	}
	h.sessions[req.ConversationID] = &widgetSession{session: session, surface: surface}
	h.mu.Unlock()

	metrics.WidgetSessionsActive.Inc()
	h.logger.Info("widget session created",
		zap.String("conversation_id", req.ConversationID),
		zap.String("error_code", req.ErrorCode),
	)

	writeJSON(w, http.StatusCreated, createWidgetResponse{
		ConversationID: req.ConversationID,
		ErrorCode:      req.ErrorCode,
		Surface:        surface.Snapshot(),
	})
}

type submitMessageRequest struct {
	Message string `json:"message"`
}

// SubmitMessage handles POST /api/v1/widget/{id}/messages. The call blocks
// until the chat exchange completes, then returns the updated snapshot.
func (h *WidgetHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws.session.Submit(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, ws.surface.Snapshot())
}

// Snapshot handles GET /api/v1/widget/{id}
func (h *WidgetHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.surface.Snapshot())
}

// Export handles GET /api/v1/widget/{id}/export. The transcript is served
// as a download so the page can hand it straight to the user.
func (h *WidgetHandler) Export(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}

	export := ws.session.ExportHistory()
	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=chat-history-%s.json", export.ConversationID))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

type escalateRequest struct {
	Reason string `json:"reason"`
}

// Escalate handles POST /api/v1/widget/{id}/escalate
func (h *WidgetHandler) Escalate(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req escalateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws.session.Escalate(chat.ParseReason(req.Reason))
	writeJSON(w, http.StatusOK, ws.surface.Snapshot())
}

// ClearHistory handles DELETE /api/v1/widget/{id}/history
func (h *WidgetHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}

	ws.session.Clear()
	ws.surface.Reset()
	writeJSON(w, http.StatusOK, ws.surface.Snapshot())
}

// Close handles DELETE /api/v1/widget/{id}
func (h *WidgetHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	_, exists := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !exists {
		writeError(w, http.StatusNotFound, "widget session not found")
		return
	}

	metrics.WidgetSessionsActive.Dec()
	h.logger.Info("widget session closed", zap.String("conversation_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the session named in the URL, writing a 404 on miss.
func (h *WidgetHandler) lookup(w http.ResponseWriter, r *http.Request) (*widgetSession, bool) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	ws, exists := h.sessions[id]
	h.mu.Unlock()

	if !exists {
		writeError(w, http.StatusNotFound, "widget session not found")
		return nil, false
	}
	return ws, true
}
