package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a DomainError
type ErrorType string

const (
	// ErrorTypeValidation marks malformed or conflicting declared parameters
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypePrecondition marks a live-system prerequisite that is not met
	ErrorTypePrecondition ErrorType = "PRECONDITION"

	// ErrorTypeNotFound marks an object the routing daemon does not know about
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeSystem marks a failed external command or OS call
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeTimeout marks a command that exceeded its configured timeout
	ErrorTypeTimeout ErrorType = "TIMEOUT"
)

// DomainError is the error type returned across layer boundaries
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError of the same type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewPreconditionError creates a precondition error
func NewPreconditionError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypePrecondition,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewSystemError creates a system error
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// UserMessage returns the message meant for the report, without the type tag
// or the wrapped cause. Non-domain errors are returned verbatim.
func UserMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Type == ErrorTypeSystem && domainErr.Cause != nil {
			return fmt.Sprintf("%s: %v", domainErr.Message, domainErr.Cause)
		}
		return domainErr.Message
	}
	return err.Error()
}

// TypeOf returns the error type, or an empty string for non-domain errors
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// IsValidationError reports whether err is a validation error
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsPreconditionError reports whether err is a precondition error
func IsPreconditionError(err error) bool {
	return TypeOf(err) == ErrorTypePrecondition
}

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsSystemError reports whether err is a system error
func IsSystemError(err error) bool {
	return TypeOf(err) == ErrorTypeSystem
}

// IsTimeoutError reports whether err is a timeout error
func IsTimeoutError(err error) bool {
	return TypeOf(err) == ErrorTypeTimeout
}
