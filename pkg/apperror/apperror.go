// Package apperror provides the application's error taxonomy: typed
// codes, HTTP status mapping, and a cause chain. Used at the HTTP
// boundary (internal/httpapi); internal/store and pkg/roster return
// plain errors.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeTimeout      Code = "TIMEOUT"

	// Roster-specific.
	CodeNoEmployees      Code = "NO_EMPLOYEES"
	CodeInvalidDateRange Code = "INVALID_DATE_RANGE"
)

// AppError is the application's error value: a code, a human message,
// an optional cause, and the HTTP status that code maps to.
type AppError struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Cause      error                  `json:"-"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause chain to errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a details string and returns the receiver.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithField attaches a structured field and returns the receiver.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates an AppError for code with the given message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: codeToHTTPStatus(code)}
}

// Wrap attaches code/message to an underlying cause.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: codeToHTTPStatus(code), Cause: err}
}

func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeInvalidDateRange:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeNoEmployees:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is an *AppError carrying code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code from err, or CodeUnknown.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetHTTPStatus extracts the HTTP status from err.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// InvalidInput builds a CodeInvalidInput error naming the offending field.
func InvalidInput(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("field %q invalid: %s", field, reason))
}

// NotFound builds a CodeNotFound error naming the missing resource.
func NotFound(resource, id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %q not found", resource, id))
}
