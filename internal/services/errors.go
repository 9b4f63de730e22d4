package services

import (
	"errors"
	"fmt"

	apperrors "github.com/learnhub/quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Quiz specific errors
	ErrQuizNotFound = errors.New("quiz not found")

	// Attempt specific errors
	ErrAttemptNotFound = errors.New("attempt not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Content generation errors
	ErrGenerationFailed = errors.New("content generation failed")

	// Persistence errors
	ErrPersistenceFailed = errors.New("persistence failed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// GenerationError wraps an upstream content-generation failure. The whole
// operation it belongs to commits nothing; the caller may retry.
type GenerationError struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Cause     error  `json:"-"`
}

func (ge *GenerationError) Error() string {
	if ge.Cause != nil {
		return fmt.Sprintf("content generation failed (%s): %s: %v", ge.Operation, ge.Message, ge.Cause)
	}
	return fmt.Sprintf("content generation failed (%s): %s", ge.Operation, ge.Message)
}

func (ge *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewGenerationError(operation, message string, cause error) *GenerationError {
	return &GenerationError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsGeneration checks if error represents an upstream generation failure
func IsGeneration(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

// IsPersistence checks if error represents a store failure
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistenceFailed)
}
