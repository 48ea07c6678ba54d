package errx

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError so callers can pick a recovery path.
type Kind string

const (
	KindGeneration Kind = "generation"
	KindStorage    Kind = "storage"
	KindArchive    Kind = "archive"
	KindConfig     Kind = "config"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

const (
	// GenerationErrorMessage describes failures of the text-generation service.
	GenerationErrorMessage = "question generation failed"
	// StorageErrorMessage describes failures writing result files.
	StorageErrorMessage = "result file could not be saved"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// MongoErrorMessage describes MongoDB related failures.
	MongoErrorMessage = "mongo operation failed"
	// NotFoundMessage describes lookups that matched nothing.
	NotFoundMessage = "record not found"
)

// AppError wraps an underlying error with a kind and a safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Storage wraps a file persistence error.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindStorage, StorageErrorMessage)
}

// Generation wraps a text-generation error.
func Generation(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindGeneration, GenerationErrorMessage)
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether the target matches the underlying error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
