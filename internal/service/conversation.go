// Package service provides the server-side conversation registry behind
// the chat endpoint.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vivekraina7/Windows-Error/internal/model"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
)

// ErrNotFound is returned for unknown conversation IDs.
var ErrNotFound = errors.New("conversation not found")

// Conversation is one server-side conversation record.
type Conversation struct {
	ID               string
	ErrorCode        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Escalated        bool
	EscalationReason string

	messages []model.ChatMessage
}

// Registry holds conversations in memory, keyed by ID. A database would
// replace this in a multi-instance deployment.
type Registry struct {
	log *logger.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewRegistry creates an empty conversation registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{
		log:           log,
		conversations: make(map[string]*Conversation),
	}
}

// Create opens a new conversation around an error code.
func (r *Registry) Create(ctx context.Context, errorCode string) *Conversation {
	now := time.Now()
	conv := &Conversation{
		ID:        uuid.Must(uuid.NewV7()).String(),
		ErrorCode: errorCode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.conversations[conv.ID] = conv
	r.mu.Unlock()

	return conv
}

// Get retrieves a conversation by ID.
func (r *Registry) Get(ctx context.Context, id string) (*Conversation, error) {
	r.mu.RLock()
	conv, exists := r.conversations[id]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	return conv, nil
}

// AppendMessage records one turn of the conversation.
func (r *Registry) AppendMessage(ctx context.Context, id string, role model.Role, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, exists := r.conversations[id]
	if !exists {
		return ErrNotFound
	}

	conv.messages = append(conv.messages, model.ChatMessage{
		Role:    string(role),
		Content: content,
	})
	conv.UpdatedAt = time.Now()
	return nil
}

// History returns up to limit most recent turns, oldest first. limit <= 0
// returns everything.
func (r *Registry) History(ctx context.Context, id string, limit int) ([]model.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, exists := r.conversations[id]
	if !exists {
		return nil, ErrNotFound
	}

	msgs := conv.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// MarkEscalated flags the conversation as handed off to human support.
func (r *Registry) MarkEscalated(ctx context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, exists := r.conversations[id]
	if !exists {
		return ErrNotFound
	}

	conv.Escalated = true
	conv.EscalationReason = reason
	conv.UpdatedAt = time.Now()
	return nil
}
