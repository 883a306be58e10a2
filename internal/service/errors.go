package service

import "fmt"

// ServiceError wraps failures of a service operation with context while
// keeping the cause reachable through errors.Is and errors.As.
type ServiceError struct {
	// Operation is the operation that failed, e.g. "suggest".
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSuggestError returns a ServiceError for the suggest operation.
func NewSuggestError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "suggest", Message: message, Err: err}
}
