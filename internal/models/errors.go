package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
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

// Error codes for the board's sentinel outcomes. Rejected operations return
// one of these as a value; nothing in the core raises a fatal failure.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeNoPermission = "NO_PERMISSION"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// NewNotFoundError signals that an identifier, comment index or sub-comment
// index did not resolve, or that an unlike target was absent.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewNoPermissionError covers every rejected mutation: non-creator callers,
// transitions outside the lifecycle table, removed entities and malformed
// status names. They collapse deliberately so the caller cannot tell which
// rule failed.
func NewNoPermissionError() *AppError {
	return &AppError{
		Code:    CodeNoPermission,
		Message: "operation not permitted",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err is the NotFound sentinel.
func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == CodeNotFound
}

// IsNoPermission reports whether err is the NoPermission sentinel.
func IsNoPermission(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == CodeNoPermission
}

// StatusForError maps an application error to an HTTP status code.
func StatusForError(err error) int {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeNoPermission:
			return fiber.StatusForbidden
		case CodeValidation:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
