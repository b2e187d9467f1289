package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried in the "code" field of every error body.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError names the missing entity and its id,
// e.g. "Recommendation with id 7 was not found".
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %v was not found", resource, id),
	}
}

// NewScopedNotFoundError reports a child that is missing under its parent.
func NewScopedNotFoundError(resource string, id any, parent string, parentID any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %v for %s with id %v was not found", resource, id, parent, parentID),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewConflictError reports a uniqueness violation. The HTTP status depends on
// the endpoint, so handlers pick it.
func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: err}
}

func NewRateLimitError(message string) *AppError {
	return &AppError{Code: CodeRateLimited, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message}
}

// WrapInternal hides err behind a generic message.
func WrapInternal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// IsCode reports whether err wraps an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes the standard error body. Internal causes are never
// echoed to the client; unauthorized responses carry the bearer challenge.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Detail: err.Error()}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{Detail: appErr.Message, Code: appErr.Code}
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	if status >= fiber.StatusInternalServerError && (appErr == nil || appErr.Code != CodeInternal) {
		response = ErrorResponse{Detail: "Internal server error", Code: CodeInternal}
	}

	return c.Status(status).JSON(response)
}
