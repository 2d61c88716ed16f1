package upload

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind represents the category of a workflow failure
type ErrorKind string

const (
	// KindNoFileSelected indicates that no candidate file is present
	KindNoFileSelected ErrorKind = "no_file_selected"

	// KindUnsupportedType indicates a media type outside the accepted image types
	KindUnsupportedType ErrorKind = "unsupported_type"

	// KindFileTooLarge indicates a candidate larger than MaxFileSize
	KindFileTooLarge ErrorKind = "file_too_large"

	// KindNetworkOrServer indicates a transport failure or a non-2xx status
	KindNetworkOrServer ErrorKind = "network_or_server"

	// KindApplication indicates a 2xx response whose body signals failure
	KindApplication ErrorKind = "application"
)

// Error is the single error type surfaced by the workflow. Message is always
// suitable for display to the user.
type Error struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message provides the human-readable description
	Message string `json:"message"`

	// StatusCode is the HTTP status for server-side failures
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// IsClientSide reports whether the error was raised before any network use
func (e *Error) IsClientSide() bool {
	switch e.Kind {
	case KindNoFileSelected, KindUnsupportedType, KindFileTooLarge:
		return true
	default:
		return false
	}
}

// NewError creates a new workflow error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorWithCause creates a workflow error with an underlying cause
func NewErrorWithCause(kind ErrorKind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NewServerError creates a network/server error carrying the HTTP status
func NewServerError(statusCode int, message string) *Error {
	return &Error{
		Kind:       KindNetworkOrServer,
		Message:    message,
		StatusCode: statusCode,
	}
}

// KindOf returns the kind of err, or "" when err is not a workflow error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind checks if err is a workflow error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-facing message for err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
