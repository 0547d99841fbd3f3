package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/internal/assistant"
	"github.com/vivekraina7/Windows-Error/internal/middleware"
	"github.com/vivekraina7/Windows-Error/internal/model"
	"github.com/vivekraina7/Windows-Error/internal/service"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
)

// ChatHandler serves the chat endpoint the widget posts to.
type ChatHandler struct {
	registry  *service.Registry
	assistant *assistant.Assistant
	logger    *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(registry *service.Registry, asst *assistant.Assistant, log *logger.Logger) *ChatHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ChatHandler{
		registry:  registry,
		assistant: asst,
		logger:    log,
	}
}

// CreateConversation handles POST /api/v1/conversations
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req model.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateErrorCode(req.ErrorCode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv := h.registry.Create(r.Context(), req.ErrorCode)
	h.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID),
		zap.String("error_code", conv.ErrorCode),
	)

	writeJSON(w, http.StatusCreated, model.CreateConversationResponse{
		ConversationID: conv.ID,
		ErrorCode:      conv.ErrorCode,
	})
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateConversationID(req.ConversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.registry.Get(ctx, req.ConversationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	history, err := h.registry.History(ctx, conv.ID, 0)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	if err := h.registry.AppendMessage(ctx, conv.ID, model.RoleUser, req.Message); err != nil {
		h.logger.Error("failed to record user message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record message")
		return
	}

	reply := h.assistant.Respond(ctx, req.Message, conv.ErrorCode, history)

	if err := h.registry.AppendMessage(ctx, conv.ID, model.RoleAssistant, reply.Content); err != nil {
		h.logger.Error("failed to record assistant message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record message")
		return
	}

	if reply.Escalate {
		if err := h.registry.MarkEscalated(ctx, conv.ID, reply.EscalationReason); err != nil && !errors.Is(err, service.ErrNotFound) {
			h.logger.Warn("failed to mark escalation", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Response:         reply.Content,
		Escalate:         reply.Escalate,
		EscalationReason: reply.EscalationReason,
	})
}
