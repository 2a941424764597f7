package ai

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Provider defines the interface for chat-completion backends
type Provider interface {
	// Ask sends a single question and returns the raw reply text.
	Ask(ctx context.Context, question string) (string, error)
}

// Errors returned by providers
var (
	ErrMissingAPIKey = errors.New("api key is not set")
	ErrTimeout       = errors.New("request timed out")
	ErrEmptyResponse = errors.New("no choices in response")
)

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// NetworkError wraps a failure to reach the API at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
