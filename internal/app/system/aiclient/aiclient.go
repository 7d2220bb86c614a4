// internal/app/system/aiclient/aiclient.go
//
// Package aiclient is the narrow view of the completion endpoint used by the
// generation tools: one blocking completion with optional web-search
// grounding, and streaming chat sessions.
package aiclient

import (
	"context"
	"errors"
	"iter"
)

// DefaultModel is used when a Request or ChatConfig leaves Model empty.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned when no credential is configured.
var ErrMissingAPIKey = errors.New("API_KEY environment variable not set")

// ErrEmptyResponse is returned when the endpoint answers without text.
var ErrEmptyResponse = errors.New("empty completion response")

// Request is a single blocking completion.
type Request struct {
	Model  string
	Prompt string
	// WebSearch enables search grounding; the response then carries
	// GroundingChunks.
	WebSearch bool
}

// Response is the result of a blocking completion.
type Response struct {
	Text            string
	GroundingChunks []GroundingChunk
}

// GroundingChunk is one grounding entry. Web is nil for chunks that do not
// reference a web page.
type GroundingChunk struct {
	Web *WebRef
}

// WebRef is a web page used to ground a completion.
type WebRef struct {
	URI   string
	Title string
}

// ChatConfig configures a new chat session.
type ChatConfig struct {
	Model             string
	SystemInstruction string
}

// Client talks to the completion endpoint.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
	NewChat(ctx context.Context, cfg ChatConfig) (Chat, error)
}

// Chat is a multi-turn conversation held by the endpoint.
type Chat interface {
	// SendStream sends msg and yields partial text chunks in arrival order.
	// A non-nil error ends the stream.
	SendStream(ctx context.Context, msg string) iter.Seq2[string, error]
}
