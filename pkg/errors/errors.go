// Package errors carries the typed errors that the HTTP layer turns into JSON
// error envelopes and that the persistence layer attaches to degraded-mode logs.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	// Caller mistakes
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// Service conditions
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// Dependencies
	ErrorTypeDatabase ErrorType = "DATABASE"
	ErrorTypeNetwork  ErrorType = "NETWORK"
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:   http.StatusBadRequest,
	ErrorTypeNotFound:     http.StatusNotFound,
	ErrorTypeUnauthorized: http.StatusUnauthorized,
	ErrorTypeInternal:     http.StatusInternalServerError,
	ErrorTypeTimeout:      http.StatusGatewayTimeout,
	ErrorTypeUnavailable:  http.StatusServiceUnavailable,
	ErrorTypeDatabase:     http.StatusInternalServerError,
	ErrorTypeNetwork:      http.StatusBadGateway,
	ErrorTypeExternal:     http.StatusBadGateway,
}

// AppError is an error with a type, an HTTP status and an optional cause
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode sets a machine readable code, e.g. STATE_NOT_LOADED
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause records the error being classified
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func newError(t ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:       t,
		Message:    message,
		Cause:      cause,
		HTTPStatus: statusByType[t],
		StackTrace: callers(),
	}
}

// callers skips itself, newError and the exported constructor
func callers() string {
	var pcs [32]uintptr
	n := runtime.Callers(4, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			return sb.String()
		}
	}
}

// NewValidationError reports a malformed request
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message, nil)
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, resource+" not found", nil)
}

// NewUnauthorizedError reports a rejected credential
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(ErrorTypeUnauthorized, message, nil)
}

// NewInternalError reports a failure the caller cannot act on
func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message, nil)
}

// NewTimeoutError reports an operation that ran out of time
func NewTimeoutError(operation string, err error) *AppError {
	return newError(ErrorTypeTimeout, operation+" timed out", err)
}

// NewUnavailableError reports a component that cannot serve yet or any more
func NewUnavailableError(component string) *AppError {
	return newError(ErrorTypeUnavailable, component+" is unavailable", nil)
}

// NewDatabaseError reports a failed storage call
func NewDatabaseError(operation string, err error) *AppError {
	return newError(ErrorTypeDatabase, operation+" failed", err)
}

// NewNetworkError reports a transport failure before any response arrived
func NewNetworkError(message string, err error) *AppError {
	return newError(ErrorTypeNetwork, message, err)
}

// NewExternalError reports a response from a dependency that could not be used
func NewExternalError(dependency string, err error) *AppError {
	return newError(ErrorTypeExternal, dependency+" answered with an unusable response", err)
}

// IsAppError reports whether err wraps an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the outermost AppError in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// TypeOf returns the type of the outermost AppError, or "" for untyped errors
func TypeOf(err error) ErrorType {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type
	}
	return ""
}
