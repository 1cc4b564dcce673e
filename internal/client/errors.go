package client

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred while talking to
// the backend.
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport-level error (connection refused,
	// unreachable host, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request did not complete in time
	ErrTypeTimeout
	// ErrTypeHTTP indicates a non-200 status code from the backend
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed JSON response
	ErrTypeParse
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents a failed exchange with the backend. Application-level
// failures (success:false in a well-formed response) are NOT APIErrors; they
// are ordinary response values the caller branches on.
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyTransportError inspects err and returns an APIError with the most
// specific type it can determine.
func classifyTransportError(message string, err error) *APIError {
	if os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &APIError{Type: ErrTypeNetwork, Message: "el servidor rechazó la conexión", Err: err}
		}
	}

	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// newHTTPError creates an error for an unexpected status code
func newHTTPError(statusCode int, message string) *APIError {
	return &APIError{Type: ErrTypeHTTP, Message: message, StatusCode: statusCode}
}

// newParseError creates an error for a malformed response body
func newParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// IsNetworkError checks if an error is a transport-level error, including
// timeouts.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == ErrTypeNetwork || apiErr.Type == ErrTypeTimeout
	}
	return false
}

// IsTimeout checks if an error is a timeout
func IsTimeout(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == ErrTypeTimeout
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == ErrTypeParse
	}
	return false
}
