// Package assistant implements the support assistant behind the chat
// endpoint: it builds the support prompt, calls an LLM provider, and turns
// escalation markers in the completion into structured hand-off decisions.
package assistant

import (
	"context"
)

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	Model       string
	Messages    []PromptMessage
	MaxTokens   int
	Temperature float64
}

// PromptMessage is one turn of the prompt sent to a provider.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Provider is the interface for LLM backends.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}

// ProviderKind selects an LLM backend.
type ProviderKind string

const (
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderOpenAI    ProviderKind = "openai"
)

// NewProvider creates a provider for the given kind.
func NewProvider(kind ProviderKind, apiKey string) (Provider, error) {
	switch kind {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey)
	default:
		return NewAnthropicProvider(apiKey)
	}
}

// PickProvider resolves the configured backend preference against the API
// keys actually present. The preferred backend wins when its key is set;
// otherwise the other backend is used if it has one. ok is false when no
// key is configured at all.
func PickProvider(preferred, anthropicKey, openaiKey string) (kind ProviderKind, apiKey string, ok bool) {
	keys := map[ProviderKind]string{
		ProviderAnthropic: anthropicKey,
		ProviderOpenAI:    openaiKey,
	}

	first := ProviderKind(preferred)
	if first != ProviderOpenAI {
		first = ProviderAnthropic
	}
	second := ProviderOpenAI
	if first == ProviderOpenAI {
		second = ProviderAnthropic
	}

	if keys[first] != "" {
		return first, keys[first], true
	}
	if keys[second] != "" {
		return second, keys[second], true
	}
	return "", "", false
}
