package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeDuplicate     = "DUPLICATE"
	CodeSelfReference = "SELF_REFERENCE"
	CodeOwnership     = "OWNERSHIP"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotFoundMessage is NewNotFoundError with a caller-supplied message.
func NewNotFoundMessage(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewDuplicateError reports an action that was already applied, or whose
// inverse was never applied (unlike without a like).
func NewDuplicateError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: message,
	}
}

func NewSelfReferenceError(message string) *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: message,
	}
}

// NewOwnershipError reports that the resource exists but belongs to someone else.
func NewOwnershipError(message string) *AppError {
	return &AppError{
		Code:    CodeOwnership,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
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

// ErrorCode returns the AppError code found in err's chain, or CodeInternal.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given AppError code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes the standard error envelope.
// Internal error details are never sent to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Result: false}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.ErrorType = appErr.Code
		response.ErrorMessage = appErr.Message
	} else {
		response.ErrorType = CodeInternal
		response.ErrorMessage = "Internal server error"
	}

	return c.Status(status).JSON(response)
}
