package providers

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCategory classifies collaborator failures.
type ErrorCategory string

const (
	// ErrorFailure indicates the collaborator returned an error
	ErrorFailure ErrorCategory = "failure"

	// ErrorPanic indicates the collaborator panicked
	ErrorPanic ErrorCategory = "panic"

	// ErrorTimeout indicates the request context expired during the fetch
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorCanceled indicates the request context was canceled
	ErrorCanceled ErrorCategory = "canceled"
)

// CollaboratorError wraps a failure of one collaborator slot.
type CollaboratorError struct {
	Source     string
	Category   ErrorCategory
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s [%s]: %s", e.Source, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *CollaboratorError) Unwrap() error {
	return e.Underlying
}

// NewCollaboratorError categorizes err for source. Context errors are
// recognized as timeout or cancellation.
func NewCollaboratorError(source string, err error) *CollaboratorError {
	category := ErrorFailure
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		category = ErrorTimeout
	case errors.Is(err, context.Canceled):
		category = ErrorCanceled
	}
	return &CollaboratorError{
		Source:     source,
		Category:   category,
		Message:    err.Error(),
		Underlying: err,
	}
}

// ErrPanicked is the underlying error of a recovered collaborator panic.
var ErrPanicked = errors.New("collaborator panicked")
