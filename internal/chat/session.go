// Package chat implements the support chat widget session: it accepts
// user-typed messages, posts them to the chat endpoint, renders both sides
// of the conversation onto a Surface, tracks a linear history, and hands
// conversations off to human support when asked to.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/internal/model"
	"github.com/vivekraina7/Windows-Error/internal/render"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
	"github.com/vivekraina7/Windows-Error/pkg/metrics"
)

// User-facing texts for the three failure classes.
const (
	connectivityErrorText = "Unable to reach the assistant. Please check your internet connection and try again."
	serverErrorText       = "I'm experiencing technical difficulties right now. Let me connect you with human support."
	genericErrorText      = "Sorry, something went wrong. Please try sending your message again."
)

const defaultEscalationDelay = time.Second

// Sender posts a message to the chat endpoint.
type Sender interface {
	Send(ctx context.Context, conversationID, message string) (*model.ChatResponse, error)
}

// Session owns one conversation. At most one chat request is outstanding at
// a time; Submit calls made while a request is in flight are dropped.
// Endpoint failures never escape Submit: they are rendered as error-flagged
// assistant messages.
type Session struct {
	conversationID string
	errorCode      string

	sender  Sender
	surface Surface
	log     *logger.Logger

	escalationDelay time.Duration
	now             func() time.Time

	mu      sync.Mutex
	history []model.ConversationMessage
	waiting bool
}

// Option configures a Session.
type Option func(*Session)

// WithEscalationDelay overrides the pause before a hand-off message
// appears. The delay is UX pacing, not a protocol requirement.
func WithEscalationDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.escalationDelay = d
		}
	}
}

// WithClock overrides the session's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session for one conversation. The error code is an
// opaque context value used only to label exports.
func NewSession(conversationID, errorCode string, sender Sender, surface Surface, log *logger.Logger, opts ...Option) *Session {
	if surface == nil {
		surface = NopSurface{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	s := &Session{
		conversationID:  conversationID,
		errorCode:       errorCode,
		sender:          sender,
		surface:         surface,
		log:             log.WithConversation(conversationID, errorCode),
		escalationDelay: defaultEscalationDelay,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConversationID returns the identifier supplied at construction.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// SendEnabled reports whether the send affordance should be active for the
// given input. Recompute on every input change and on request completion.
func (s *Session) SendEnabled(input string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(input) != "" && !s.waiting
}

// Waiting reports whether a chat request is outstanding.
func (s *Session) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting
}

// Submit sends the user's input through the chat endpoint and renders the
// exchange. Whitespace-only input and submissions made while a request is
// outstanding are dropped silently.
func (s *Session) Submit(ctx context.Context, rawInput string) {
	message := strings.TrimSpace(rawInput)
	if message == "" {
		return
	}

	s.mu.Lock()
	if s.waiting {
		s.mu.Unlock()
		s.log.Debug("submit dropped, request already in flight")
		return
	}
	s.waiting = true
	s.appendLocked(model.RoleUser, message, false)
	s.mu.Unlock()

	s.surface.ClearInput()
	s.surface.SetSendEnabled(false)
	s.surface.SetTyping(true)
	s.surface.ScrollToLatest()

	start := s.now()
	resp, err := s.sender.Send(ctx, s.conversationID, message)
	elapsed := s.now().Sub(start).Seconds()

	s.surface.SetTyping(false)
	s.mu.Lock()
	s.waiting = false
	s.mu.Unlock()
	s.surface.SetSendEnabled(false) // input is empty until the user types again

	if err != nil {
		metrics.RecordChatRequest("error", elapsed)
		s.handleFailure(err)
		return
	}
	metrics.RecordChatRequest("success", elapsed)

	s.append(model.RoleAssistant, resp.Response, false)
	s.surface.FocusInput()

	if resp.Escalate {
		s.scheduleEscalation(ParseReason(resp.EscalationReason))
	}
}

// handleFailure converts an endpoint failure into a rendered assistant
// message, picking the text by failure class. Server faults additionally
// trigger an escalation.
func (s *Session) handleFailure(err error) {
	text := genericErrorText
	escalate := false

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Class {
		case FailureConnectivity:
			text = connectivityErrorText
		case FailureServer:
			text = serverErrorText
			escalate = true
		case FailureOther:
			text = genericErrorText
		}
	}

	s.log.Warn("chat request failed", zap.Error(err))
	s.append(model.RoleAssistant, text, true)
	s.surface.FocusInput()

	if escalate {
		s.scheduleEscalation(ReasonServerError)
	}
}

// scheduleEscalation fires Escalate after the configured pacing delay. The
// timer always runs to completion; there is no cancellation.
func (s *Session) scheduleEscalation(reason Reason) {
	time.AfterFunc(s.escalationDelay, func() {
		s.Escalate(reason)
	})
}

// Escalate opens the hand-off surface and appends the canned assistant
// message for the reason. Unrecognized reasons fall back to the generic
// connecting-you text.
func (s *Session) Escalate(reason Reason) {
	if normalized := ParseReason(string(reason)); normalized != reason {
		s.log.Debug("unrecognized escalation reason", zap.String("reason", string(reason)))
		reason = normalized
	}

	s.log.Info("escalating to human support", zap.String("reason", string(reason)))
	metrics.EscalationsTotal.WithLabelValues(string(reason)).Inc()

	s.surface.ShowHandoff(reason)
	s.append(model.RoleAssistant, reason.Message(), false)
}

// ExportHistory returns the conversation transcript. Pure; no side effects.
func (s *Session) ExportHistory() model.HistoryExport {
	s.mu.Lock()
	messages := make([]model.ConversationMessage, len(s.history))
	copy(messages, s.history)
	s.mu.Unlock()

	return model.HistoryExport{
		ConversationID: s.conversationID,
		ErrorCode:      s.errorCode,
		Messages:       messages,
		Timestamp:      s.now(),
	}
}

// Clear resets the history to empty.
func (s *Session) Clear() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// History returns a copy of the message history.
func (s *Session) History() []model.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ConversationMessage, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) append(role model.Role, content string, isError bool) {
	s.mu.Lock()
	s.appendLocked(role, content, isError)
	s.mu.Unlock()
}

// appendLocked records the message and renders it onto the surface.
// Caller holds s.mu.
func (s *Session) appendLocked(role model.Role, content string, isError bool) {
	s.history = append(s.history, model.ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		IsError:   isError,
	})
	metrics.MessagesTotal.WithLabelValues(string(role)).Inc()

	html := render.User(content)
	if role == model.RoleAssistant {
		html = render.Assistant(content)
	}
	s.surface.AppendMessage(RenderedMessage{Role: role, HTML: html, IsError: isError})
	s.surface.ScrollToLatest()
}
