package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeTable      ErrorType = "table"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewDecodeError creates a new image decode error
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeDecode, Message: message, Cause: cause}
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeProcessing, Message: message, Cause: cause}
}

// NewParseError creates a new narrative parse error
func NewParseError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeParse, Message: message, Cause: cause}
}

// NewTableError creates a new knowledge-table error
func NewTableError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTable, Message: message, Cause: cause}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// IsType checks if the error, or any error it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}
