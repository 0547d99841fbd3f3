// Package model defines data structures for the support chat widget.
package model

import (
	"time"
)

// Role represents the side of the conversation a message belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is one entry in a chat session's history. Messages are
// immutable once appended; the history is append-only, insertion order is
// chronological order.
type ConversationMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"isError"`
}

// ChatMessage is the provider-facing shape of a history entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
