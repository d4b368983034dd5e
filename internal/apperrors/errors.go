package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by services and handlers.
const (
	CodeInternal           = "INTERNAL"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

var statusByCode = map[string]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeInvalidArgument:    http.StatusBadRequest,
	CodeInvalidFormat:      http.StatusBadRequest,
	CodeFileTooLarge:       http.StatusBadRequest,
	CodeUnauthenticated:    http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusBadRequest,
	CodeStorageUnavailable: http.StatusBadGateway,
}

// AppError carries a stable code next to a human readable message.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string { return e.code }

// Message is the client-facing part of the error, without the wrapped cause.
func (e *AppError) Message() string { return e.message }

func (e *AppError) Unwrap() error { return e.err }

func New(code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Wrap attaches err as the cause of a new AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{code: code, message: message, err: err}
}

func InvalidArgument(message string) *AppError { return New(CodeInvalidArgument, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func Unauthenticated() *AppError               { return New(CodeUnauthenticated, "Unauthorized") }

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// HTTPStatus maps err to the status code written by handlers.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
