// internal/app/system/generation/errors.go
package generation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is the configuration error: no credential was
	// available at startup. Directory features keep working.
	ErrNotConfigured = errors.New("API_KEY environment variable not set")

	// ErrBusy is returned when a chat turn is already in flight.
	ErrBusy = errors.New("a response is already in progress")

	// ErrInvalidRequest is matched by every *ValidationError.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// ValidationError lists the required fields left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// FailedError is a failed generation. Its message is safe to show to the user;
// Cause holds the underlying endpoint error.
type FailedError struct {
	Context string
	Cause   error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("Failed to %s due to an API error.", e.Context)
}

func (e *FailedError) Unwrap() error { return e.Cause }

// Messages substituted into a chat transcript.
const (
	GreetingMessage    = "Hello! I am your NPO Assistant. How can I help you today with your non-profit?"
	InitErrorMessage   = "Sorry, the chat assistant could not be initialized. Please check your API Key and network connection, then try closing and reopening this tool."
	StreamErrorMessage = "Sorry, an error occurred. This could be a network issue or a problem with the AI service. Please check your connection and try again. If the problem persists, the service may be temporarily unavailable."
)

// StreamError is a chat stream that failed mid-turn. The transcript already
// holds StreamErrorMessage in place of the reply when it is reported.
type StreamError struct {
	Cause error
}

func (e *StreamError) Error() string {
	if e.Cause == nil {
		return "chat stream failed"
	}
	return "chat stream failed: " + e.Cause.Error()
}

func (e *StreamError) Unwrap() error { return e.Cause }
