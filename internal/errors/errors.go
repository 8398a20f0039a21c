// Package errors defines the structured error taxonomy for the Parkr live job system.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a job or worker was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeIllegalTransition indicates a job status change outside the lifecycle table.
	ErrCodeIllegalTransition ErrorCode = "illegal_transition"
	// ErrCodeStaleAcceptance indicates an accept attempt on a job that is no longer
	// offerable (already accepted, cancelled, or past its offer deadline). This is
	// an expected outcome of racing workers, not a bug.
	ErrCodeStaleAcceptance ErrorCode = "stale_acceptance"
	// ErrCodePersistence indicates the underlying store read or write failed.
	ErrCodePersistence ErrorCode = "persistence"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeConflict indicates a conflict with existing state (e.g., a second open
	// job for a customer or worker).
	ErrCodeConflict ErrorCode = "conflict"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// IllegalTransition creates a new IllegalTransition error.
func IllegalTransition(message string) *AppError {
	return &AppError{
		Code:    ErrCodeIllegalTransition,
		Message: message,
	}
}

// IllegalTransitionf creates a new IllegalTransition error with formatted message.
func IllegalTransitionf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeIllegalTransition,
		Message: fmt.Sprintf(format, args...),
	}
}

// StaleAcceptance creates a new StaleAcceptance error.
func StaleAcceptance(message string) *AppError {
	return &AppError{
		Code:    ErrCodeStaleAcceptance,
		Message: message,
	}
}

// StaleAcceptancef creates a new StaleAcceptance error with formatted message.
func StaleAcceptancef(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeStaleAcceptance,
		Message: fmt.Sprintf(format, args...),
	}
}

// Persistence creates a new Persistence error.
func Persistence(message string) *AppError {
	return &AppError{
		Code:    ErrCodePersistence,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Conflictf creates a new Conflict error with formatted message.
func Conflictf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsIllegalTransition checks if an error is an IllegalTransition error.
func IsIllegalTransition(err error) bool {
	return isCode(err, ErrCodeIllegalTransition)
}

// IsStaleAcceptance checks if an error is a StaleAcceptance error.
func IsStaleAcceptance(err error) bool {
	return isCode(err, ErrCodeStaleAcceptance)
}

// IsPersistence checks if an error is a Persistence error.
func IsPersistence(err error) bool {
	return isCode(err, ErrCodePersistence)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
