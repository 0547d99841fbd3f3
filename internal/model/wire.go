package model

import (
	"time"
)

// ChatRequest is the JSON body the widget posts to the chat endpoint.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// ChatResponse is the chat endpoint's reply. EscalationReason is present
// when Escalate is true.
type ChatResponse struct {
	Response         string `json:"response"`
	Escalate         bool   `json:"escalate"`
	EscalationReason string `json:"escalation_reason,omitempty"`
}

// CreateConversationRequest is the request to open a new conversation.
type CreateConversationRequest struct {
	ErrorCode string `json:"error_code,omitempty"`
}

// CreateConversationResponse carries the identifier of a new conversation.
type CreateConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	ErrorCode      string `json:"error_code,omitempty"`
}

// HistoryExport is the downloadable conversation transcript.
type HistoryExport struct {
	ConversationID string                `json:"conversationId"`
	ErrorCode      string                `json:"errorCode"`
	Messages       []ConversationMessage `json:"messages"`
	Timestamp      time.Time             `json:"timestamp"`
}
