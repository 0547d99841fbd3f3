package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/internal/model"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
	"github.com/vivekraina7/Windows-Error/pkg/metrics"
)

// escalateMarker is the tag the prompt asks the model to append when a
// conversation needs a human.
const escalateMarker = "[ESCALATE:"

// maxHistoryTurns bounds how much conversation history goes into the prompt.
const maxHistoryTurns = 10

const unavailableReply = "I apologize, but the AI assistant is currently unavailable. Please contact support for assistance with your issue."

const troubleReply = "I'm having trouble processing your request right now. Let me connect you with human support."

// Reply is the assistant's structured answer.
type Reply struct {
	Content          string
	Escalate         bool
	EscalationReason string
}

// Assistant answers support conversations through an LLM provider. A nil
// provider is legal and produces the canned unavailable reply, so the chat
// endpoint keeps working without API keys.
type Assistant struct {
	provider Provider
	model    string
	log      *logger.Logger
}

// New creates an assistant. model may be empty to use the provider default.
func New(provider Provider, model string, log *logger.Logger) *Assistant {
	if log == nil {
		log = logger.NewNop()
	}
	return &Assistant{provider: provider, model: model, log: log}
}

// Available reports whether a provider is configured.
func (a *Assistant) Available() bool {
	return a.provider != nil
}

// Respond produces a reply for the user's message in the context of the
// conversation so far. Provider failures degrade to an apologetic reply
// with an escalation instead of an error.
func (a *Assistant) Respond(ctx context.Context, userMessage, errorCode string, history []model.ChatMessage) *Reply {
	if a.provider == nil {
		return &Reply{
			Content:          unavailableReply,
			Escalate:         true,
			EscalationReason: "ai_unavailable",
		}
	}

	resp, err := a.provider.Complete(ctx, &CompletionRequest{
		Model: a.model,
		Messages: []PromptMessage{
			{Role: "user", Content: buildPrompt(userMessage, errorCode, history)},
		},
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		a.log.Error("assistant completion failed", zap.Error(err))
		metrics.RecordAssistant(a.provider.Name(), "error", 0, 0, 0)
		return &Reply{
			Content:          troubleReply,
			Escalate:         true,
			EscalationReason: "server_error",
		}
	}

	metrics.RecordAssistant(a.provider.Name(), "success",
		float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	content, reason, escalate := parseEscalation(resp.Content)
	a.log.Info("assistant reply generated",
		zap.String("error_code", errorCode),
		zap.Bool("escalate", escalate),
	)

	return &Reply{
		Content:          content,
		Escalate:         escalate,
		EscalationReason: reason,
	}
}

// buildPrompt assembles the support context: the error being diagnosed,
// recent conversation turns, and the escalation protocol.
func buildPrompt(userMessage, errorCode string, history []model.ChatMessage) string {
	var b strings.Builder

	b.WriteString("You are a Windows technical support assistant helping users with dump file errors.\n\n")
	fmt.Fprintf(&b, "Current error: %s\n\n", errorCode)

	b.WriteString("Previous conversation:\n")
	start := 0
	if len(history) > maxHistoryTurns {
		start = len(history) - maxHistoryTurns
	}
	for _, msg := range history[start:] {
		role := "Assistant"
		if msg.Role == string(model.RoleUser) {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}

	b.WriteString(`
Guidelines:
1. Be helpful and patient
2. Provide step-by-step instructions when needed
3. Ask clarifying questions if a solution didn't work
4. Use simple, non-technical language when possible
5. If human support is needed, end your response with [ESCALATE: reason]

Escalation reasons: complexity, solution_failed, user_request

`)
	fmt.Fprintf(&b, "User message: %s\n", userMessage)

	return b.String()
}

// parseEscalation strips a trailing escalation marker from the completion.
// A marker without a closing bracket yields the unknown reason.
func parseEscalation(content string) (clean, reason string, escalate bool) {
	idx := strings.Index(content, escalateMarker)
	if idx < 0 {
		return strings.TrimSpace(content), "", false
	}

	clean = strings.TrimSpace(content[:idx])
	rest := content[idx+len(escalateMarker):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return clean, "unknown", true
	}
	return clean, strings.TrimSpace(rest[:end]), true
}
