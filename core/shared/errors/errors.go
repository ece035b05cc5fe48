package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Generator misuse
	ErrCodeEmptyInput   ErrorCode = "EMPTY_INPUT"
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Run sequencing
	ErrCodePreconditionNotMet ErrorCode = "PRECONDITION_NOT_MET"

	// Infrastructure errors
	ErrCodeConfiguration       ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeConnectivity        ErrorCode = "CONNECTIVITY_ERROR"
	ErrCodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
	ErrCodeStore               ErrorCode = "STORE_ERROR"
	ErrCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with code and context
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapError wraps an existing error with an error code and message
func WrapError(code ErrorCode, message string, err error) *AppError {
	return NewAppError(code, message, err)
}

// EmptyInput reports a draw from an empty pool.
func EmptyInput(format string, args ...any) *AppError {
	return NewAppError(ErrCodeEmptyInput, fmt.Sprintf(format, args...), nil)
}

// InvalidRange reports bounds given in the wrong order.
func InvalidRange(format string, args ...any) *AppError {
	return NewAppError(ErrCodeInvalidRange, fmt.Sprintf(format, args...), nil)
}

// Configuration reports missing or malformed settings.
func Configuration(format string, args ...any) *AppError {
	return NewAppError(ErrCodeConfiguration, fmt.Sprintf(format, args...), nil)
}

// PreconditionNotMet reports that a prior stage has not populated its collections.
func PreconditionNotMet(format string, args ...any) *AppError {
	return NewAppError(ErrCodePreconditionNotMet, fmt.Sprintf(format, args...), nil)
}

// CodeOf returns the code of the first AppError in the chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the message of the first AppError in the chain, or
// err.Error() if there is none.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func hasCode(err error, codes ...ErrorCode) bool {
	code := CodeOf(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}

// IsEmptyInput checks if the error is an empty pool error
func IsEmptyInput(err error) bool {
	return hasCode(err, ErrCodeEmptyInput)
}

// IsInvalidRange checks if the error is an invalid range error
func IsInvalidRange(err error) bool {
	return hasCode(err, ErrCodeInvalidRange)
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return hasCode(err, ErrCodeConfiguration)
}

// IsConnectivity checks if the error is a connectivity error
func IsConnectivity(err error) bool {
	return hasCode(err, ErrCodeConnectivity)
}

// IsConstraintViolation checks if the error is a unique-index collision
func IsConstraintViolation(err error) bool {
	return hasCode(err, ErrCodeConstraintViolation)
}

// IsPreconditionNotMet checks if the error is a missing prior-stage error
func IsPreconditionNotMet(err error) bool {
	return hasCode(err, ErrCodePreconditionNotMet)
}

// IsStoreError checks if the error originated in the store gateway
func IsStoreError(err error) bool {
	return hasCode(err, ErrCodeStore, ErrCodeConnectivity, ErrCodeConstraintViolation)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CodeOf(err) {
	case ErrCodeConfiguration:
		return 2
	case ErrCodeConnectivity:
		return 3
	case ErrCodeConstraintViolation:
		return 4
	default:
		return 1
	}
}
