// Package errors provides structured error types for Montessa
package errors

import (
	"fmt"
	"net/http"
)

// APIError is the interface implemented by all Montessa errors
type APIError interface {
	error
	Code() string
	HTTPStatus() int
}

// BaseError is the base implementation of APIError
type BaseError struct {
	code       string
	message    string
	httpStatus int
	cause      error
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *BaseError) Code() string    { return e.code }
func (e *BaseError) HTTPStatus() int { return e.httpStatus }
func (e *BaseError) Unwrap() error   { return e.cause }
func (e *BaseError) Message() string { return e.message }

// NotFound creates a not-found error
func NotFound(resource string) *BaseError {
	return &BaseError{
		code:       "NOT_FOUND",
		message:    fmt.Sprintf("%s not found", resource),
		httpStatus: http.StatusNotFound,
	}
}

// Validation creates a validation error
func Validation(message string) *BaseError {
	return &BaseError{
		code:       "VALIDATION_ERROR",
		message:    message,
		httpStatus: http.StatusBadRequest,
	}
}

// PermissionDenied creates a permission error
func PermissionDenied(action string) *BaseError {
	return &BaseError{
		code:       "PERMISSION_DENIED",
		message:    fmt.Sprintf("permission denied: %s", action),
		httpStatus: http.StatusForbidden,
	}
}

// Unauthorized creates an authentication error
func Unauthorized(message string) *BaseError {
	if message == "" {
		message = "authentication required"
	}
	return &BaseError{
		code:       "UNAUTHORIZED",
		message:    message,
		httpStatus: http.StatusUnauthorized,
	}
}

// Internal creates an internal server error
func Internal(message string, cause error) *BaseError {
	return &BaseError{
		code:       "INTERNAL_ERROR",
		message:    message,
		httpStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

// Conflict creates a conflict error
func Conflict(message string) *BaseError {
	return &BaseError{
		code:       "CONFLICT",
		message:    message,
		httpStatus: http.StatusConflict,
	}
}

// BadRequest creates a bad request error
func BadRequest(message string) *BaseError {
	return &BaseError{
		code:       "BAD_REQUEST",
		message:    message,
		httpStatus: http.StatusBadRequest,
	}
}

// ToHTTPError converts an error to an HTTP status and response body
func ToHTTPError(err error) (int, map[string]interface{}) {
	if apiErr, ok := err.(APIError); ok {
		return apiErr.HTTPStatus(), map[string]interface{}{
			"error": map[string]interface{}{
				"code":    apiErr.Code(),
				"message": apiErr.Error(),
			},
		}
	}
	return http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		},
	}
}
