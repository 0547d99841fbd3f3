package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vivekraina7/Windows-Error/internal/model"
)

// FailureClass buckets chat endpoint failures for user-facing messaging.
type FailureClass int

const (
	// FailureConnectivity means the endpoint could not be reached at all.
	FailureConnectivity FailureClass = iota
	// FailureServer means the endpoint answered with a 5xx status.
	FailureServer
	// FailureOther covers every remaining failure mode.
	FailureOther
)

// RequestError is a classified chat endpoint failure.
type RequestError struct {
	Class      FailureClass
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client posts messages to the configured chat endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a chat endpoint client.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send posts one message and decodes the reply. Failures come back as a
// *RequestError so callers can branch on the failure class.
func (c *Client) Send(ctx context.Context, conversationID, message string) (*model.ChatResponse, error) {
	body, err := json.Marshal(model.ChatRequest{
		ConversationID: conversationID,
		Message:        message,
	})
	if err != nil {
		return nil, &RequestError{Class: FailureOther, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Class: FailureOther, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: the endpoint is unreachable.
		return nil, &RequestError{Class: FailureConnectivity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &RequestError{Class: FailureServer, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Class: FailureOther, StatusCode: resp.StatusCode}
	}

	var chatResp model.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &RequestError{Class: FailureOther, Err: err}
	}

	return &chatResp, nil
}
