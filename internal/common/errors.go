package common

import (
	"context"
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInternal              = errors.New("internal error")
	ErrValidation            = errors.New("validation failed")
)

// Error codes used with NewAppError.
const (
	CodeConfig     = "CONFIG_ERROR"
	CodeInput      = "INPUT_ERROR"
	CodeDependency = "DEPENDENCY_UNAVAILABLE"
	CodeExtraction = "EXTRACTION_FAILED"
	CodeExport     = "EXPORT_FAILED"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InputError rejects a user-supplied input before any processing starts.
func InputError(format string, args ...any) error {
	return NewAppError(CodeInput, fmt.Sprintf(format, args...), ErrInvalidInput)
}

// NotFoundError rejects an input path that does not exist.
func NotFoundError(path string, cause error) error {
	return NewAppError(CodeInput, fmt.Sprintf("%s: no such file or directory", path), errors.Join(ErrInvalidInput, ErrNotFound, cause))
}

// ExtractionError reports a batch that failed after its inputs were accepted.
// Causes already classified as input or dependency failures keep that class;
// anything else is marked ErrInternal.
func ExtractionError(message string, cause error) error {
	if errors.Is(cause, ErrInvalidInput) || errors.Is(cause, ErrDependencyUnavailable) || errors.Is(cause, context.Canceled) {
		return NewAppError(CodeExtraction, message, cause)
	}
	return NewAppError(CodeExtraction, message, errors.Join(ErrInternal, cause))
}

// DependencyError reports a missing external collaborator such as a renderer binary.
func DependencyError(name string, cause error) error {
	return NewAppError(CodeDependency, name+" is not available", errors.Join(ErrDependencyUnavailable, cause))
}

// IsInputError reports whether err was caused by bad user input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
