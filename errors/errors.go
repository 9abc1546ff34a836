package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrKnowledgeBase indicates the knowledge base could not be loaded
	ErrKnowledgeBase = errors.New("knowledge base load failed")

	// ErrInvalidPattern indicates a fuzzy pattern line failed to compile
	ErrInvalidPattern = errors.New("invalid fuzzy pattern")

	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrDatabaseOperation indicates a database operation failed
	ErrDatabaseOperation = errors.New("database operation failed")
)

// WrapError wraps an error with context message and stack
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsKnowledgeBase checks if error is a knowledge base load error
func IsKnowledgeBase(err error) bool {
	return errors.Is(err, ErrKnowledgeBase)
}

// IsInvalidPattern checks if error is a pattern compile error
func IsInvalidPattern(err error) bool {
	return errors.Is(err, ErrInvalidPattern)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
