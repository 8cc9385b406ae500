package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionNotFound     ErrorCode = "SESSION-001"
	ErrCodeSessionStoreRead    ErrorCode = "SESSION-002"
	ErrCodeSessionStoreWrite   ErrorCode = "SESSION-003"
	ErrCodeSessionSealOpen     ErrorCode = "SESSION-004"
	ErrCodeSessionNotLoggedIn  ErrorCode = "SESSION-005"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRejected     ErrorCode = "AUTH-001"
	ErrCodeAuthOTPInvalid   ErrorCode = "AUTH-002"
	ErrCodeAuthPinInvalid   ErrorCode = "AUTH-003"
	ErrCodeAuthNoToken      ErrorCode = "AUTH-004"

	// Flow errors (FLOW-001 to FLOW-099)
	ErrCodeFlowIllegalEvent ErrorCode = "FLOW-001"
	ErrCodeFlowCompleted    ErrorCode = "FLOW-002"
	ErrCodeFlowNotCompleted ErrorCode = "FLOW-003"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIResponse     ErrorCode = "API-002"
	ErrCodeAPIUnauthorized ErrorCode = "API-003"

	// Validation errors (VALID-001 to VALID-099)
	ErrCodeValidation ErrorCode = "VALID-001"

	// MedAlert errors (MEDALERT-001 to MEDALERT-099)
	ErrCodeMedAlertNotFound ErrorCode = "MEDALERT-001"

	// Chat errors (CHAT-001 to CHAT-099)
	ErrCodeChatQuery      ErrorCode = "CHAT-001"
	ErrCodeChatFileUpload ErrorCode = "CHAT-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
)

// ClientError represents an enhanced error with code, suggestions, and cause
type ClientError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// New creates a new ClientError
func New(code ErrorCode, message string) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ClientError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ClientError) WithSuggestion(suggestion string) *ClientError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ClientError) WithSuggestions(suggestions ...string) *ClientError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a missing-session error
func NewNotLoggedInError() *ClientError {
	return New(ErrCodeSessionNotLoggedIn, "not logged in").
		WithSuggestion("Run 'swastha auth login' to authenticate").
		WithSuggestion("Run 'swastha auth signup' if you don't have an account")
}

// NewAuthRejectedError creates a backend rejection error carrying the backend message
func NewAuthRejectedError(backendMessage string) *ClientError {
	if backendMessage == "" {
		backendMessage = "authentication rejected by the backend"
	}
	return New(ErrCodeAuthRejected, backendMessage).
		WithSuggestion("Check your email, OTP, or security PIN and try again")
}

// NewIllegalEventError creates an illegal flow transition error
func NewIllegalEventError(step string, event string) *ClientError {
	return New(ErrCodeFlowIllegalEvent, fmt.Sprintf("event %q is not valid at step %q", event, step)).
		WithSuggestion("Complete the current step before continuing")
}

// NewValidationError creates a client-side validation error
func NewValidationError(details string) *ClientError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed: %s", details)).
		WithSuggestion("Correct the highlighted field and resubmit")
}

// NewUnauthorizedError creates an API authentication failure error.
// The dispatcher takes no corrective action; callers decide what to do.
func NewUnauthorizedError(path string) *ClientError {
	return New(ErrCodeAPIUnauthorized, fmt.Sprintf("request to %s was unauthorized", path)).
		WithSuggestion("Your session may have expired; run 'swastha auth login'")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *ClientError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
