// Package errhandling provides error types and classification utilities.
// Classification distinguishes failures that abort the whole run (missing
// input file, unwritable output, bad configuration) from failures in record
// data, which the modules themselves degrade and never surface as errors.
package errhandling

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorCategory represents the type/category of an error.
type ErrorCategory string

// Error categories for classification.
const (
	// CategoryConfig represents job configuration errors (bad thresholds,
	// unknown module types, invalid expressions). Always fatal.
	CategoryConfig ErrorCategory = "config"

	// CategoryIO represents file system errors (missing input, unwritable
	// output, permission denied). Always fatal: the run has no remote
	// resources, so there is nothing to retry.
	CategoryIO ErrorCategory = "io"

	// CategoryData represents record-level data errors. Modules degrade
	// malformed field values instead of failing; a data error reaching the
	// executor indicates malformed tabular structure, not a bad field.
	CategoryData ErrorCategory = "data"

	// CategoryCanceled represents a canceled run (user initiated).
	CategoryCanceled ErrorCategory = "canceled"

	// CategoryUnknown represents unclassified errors.
	CategoryUnknown ErrorCategory = "unknown"
)

// ClassifiedError wraps an error with classification metadata.
type ClassifiedError struct {
	// Category is the error classification category.
	Category ErrorCategory

	// Message is a human-readable error message.
	Message string

	// OriginalErr is the underlying error that was classified.
	OriginalErr error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}

// Unwrap returns the original error for use with errors.Is and errors.As.
func (e *ClassifiedError) Unwrap() error {
	return e.OriginalErr
}

// NewConfigError creates a ClassifiedError for job configuration errors.
func NewConfigError(message string, originalErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:    CategoryConfig,
		Message:     message,
		OriginalErr: originalErr,
	}
}

// NewIOError creates a ClassifiedError for file system errors.
func NewIOError(message string, originalErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:    CategoryIO,
		Message:     message,
		OriginalErr: originalErr,
	}
}

// NewDataError creates a ClassifiedError for malformed record data.
func NewDataError(message string, originalErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:    CategoryData,
		Message:     message,
		OriginalErr: originalErr,
	}
}

// ClassifyError classifies any error into a ClassifiedError.
// Already classified errors pass through; context cancellation and file
// system errors are recognized, everything else is CategoryUnknown.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return &ClassifiedError{
			Category: CategoryUnknown,
			Message:  "nil error",
		}
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ClassifiedError{
			Category:    CategoryCanceled,
			Message:     "run canceled",
			OriginalErr: err,
		}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return &ClassifiedError{
			Category:    CategoryIO,
			Message:     err.Error(),
			OriginalErr: err,
		}
	}

	return &ClassifiedError{
		Category:    CategoryUnknown,
		Message:     err.Error(),
		OriginalErr: err,
	}
}

// GetErrorCategory returns the error category for a given error.
// Returns CategoryUnknown for nil errors.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return ClassifyError(err).Category
}
