// Package provider defines the streaming text-completion interface that AI
// backends implement, and the error categories callers must distinguish.
package provider

import (
	"context"
)

// LLMProvider defines the interface for interacting with an LLM provider.
type LLMProvider interface {
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error)
}

// CompletionRequest is a single-turn text generation request.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature *float64
}

// Message is one conversation turn with plain text content.
type Message struct {
	Role    string
	Content string
}

// Stream event types.
const (
	EventTextDelta = "text_delta"
	EventStop      = "stop"
	EventError     = "error"
)

// StreamEvent represents a single event in a streaming response.
type StreamEvent struct {
	Type         string
	Text         string
	StopReason   string
	Error        error
	InputTokens  int
	OutputTokens int
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return Message{Role: "user", Content: text}
}
