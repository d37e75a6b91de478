package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is matches domain errors by code so errors.Is works against the
// sentinel values below even after WithMessagef.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessagef returns a copy of the error carrying a formatted message.
// The code is preserved so errors.Is style comparisons on Code keep working.
func (e *DomainError) WithMessagef(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrIntegrityViolation = NewDomainError("INTEGRITY_VIOLATION", "Operation would violate a business invariant")
	ErrInsufficientStock  = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// CodeOf extracts the domain error code, or empty string for non-domain errors.
func CodeOf(err error) string {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}
