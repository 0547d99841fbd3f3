package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vivekraina7/Windows-Error/internal/model"
)

// mockProvider returns a scripted completion or error.
type mockProvider struct {
	content string
	err     error
	lastReq *CompletionRequest
}

func (m *mockProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &CompletionResponse{Content: m.content}, nil
}

func (m *mockProvider) Name() string { return "mock" }

func TestRespondWithoutProvider(t *testing.T) {
	a := New(nil, "", nil)
	require.False(t, a.Available())

	reply := a.Respond(context.Background(), "help", "0x0000007B", nil)
	require.Equal(t, unavailableReply, reply.Content)
	require.True(t, reply.Escalate)
	require.Equal(t, "ai_unavailable", reply.EscalationReason)
}

func TestRespondProviderFailure(t *testing.T) {
	p := &mockProvider{err: errors.New("rate limited")}
	a := New(p, "", nil)

	reply := a.Respond(context.Background(), "help", "0x0000007B", nil)
	require.Equal(t, troubleReply, reply.Content)
	require.True(t, reply.Escalate)
	require.Equal(t, "server_error", reply.EscalationReason)
}

func TestRespondPlainAnswer(t *testing.T) {
	p := &mockProvider{content: "Try booting into safe mode."}
	a := New(p, "", nil)

	reply := a.Respond(context.Background(), "my PC blue-screened", "0x0000007B", nil)
	require.Equal(t, "Try booting into safe mode.", reply.Content)
	require.False(t, reply.Escalate)
	require.Empty(t, reply.EscalationReason)
}

func TestRespondParsesEscalationMarker(t *testing.T) {
	p := &mockProvider{content: "This needs a specialist. [ESCALATE: complexity]"}
	a := New(p, "", nil)

	reply := a.Respond(context.Background(), "still broken", "0x0000007B", nil)
	require.Equal(t, "This needs a specialist.", reply.Content)
	require.True(t, reply.Escalate)
	require.Equal(t, "complexity", reply.EscalationReason)
}

func TestParseEscalation(t *testing.T) {
	tests := []struct {
		in         string
		wantClean  string
		wantReason string
		wantFlag   bool
	}{
		{"plain answer", "plain answer", "", false},
		{"answer [ESCALATE: user_request]", "answer", "user_request", true},
		{"answer [ESCALATE:solution_failed]", "answer", "solution_failed", true},
		{"broken marker [ESCALATE: oops", "broken marker", "unknown", true},
		{"[ESCALATE: complexity]", "", "complexity", true},
	}

	for _, tt := range tests {
		clean, reason, escalate := parseEscalation(tt.in)
		require.Equal(t, tt.wantClean, clean, "input %q", tt.in)
		require.Equal(t, tt.wantReason, reason, "input %q", tt.in)
		require.Equal(t, tt.wantFlag, escalate, "input %q", tt.in)
	}
}

func TestPromptIncludesErrorCodeAndMessage(t *testing.T) {
	p := &mockProvider{content: "ok"}
	a := New(p, "", nil)

	a.Respond(context.Background(), "what does this mean?", "0xDEADBEEF", []model.ChatMessage{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	})

	require.NotNil(t, p.lastReq)
	require.Len(t, p.lastReq.Messages, 1)
	prompt := p.lastReq.Messages[0].Content
	require.Contains(t, prompt, "0xDEADBEEF")
	require.Contains(t, prompt, "what does this mean?")
	require.Contains(t, prompt, "User: earlier question")
	require.Contains(t, prompt, "Assistant: earlier answer")
}

func TestPromptHistoryWindow(t *testing.T) {
	p := &mockProvider{content: "ok"}
	a := New(p, "", nil)

	var history []model.ChatMessage
	for i := 0; i < 15; i++ {
		history = append(history, model.ChatMessage{
			Role:    "user",
			Content: fmt.Sprintf("turn-%d", i),
		})
	}

	a.Respond(context.Background(), "latest", "0x1", history)

	prompt := p.lastReq.Messages[0].Content
	require.NotContains(t, prompt, "turn-4")
	require.Contains(t, prompt, "turn-5")
	require.Contains(t, prompt, "turn-14")
}
