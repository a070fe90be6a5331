package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is the uniform error envelope returned to clients. It carries an
// HTTP status and a short message only; internal causes are never serialized.
type AppError struct {
	Code    int    `json:"status"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As checks.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates an AppError with an explicit status code and cause.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// NewBadRequestError creates a 400 AppError.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates a 401 AppError.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewConflictError creates a 409 AppError.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

// NewInternalServerError creates a 500 AppError.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// NewGatewayTimeoutError creates a 504 AppError, used when an external
// collaborator (OAuth provider, email service) is unreachable.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message}
}
