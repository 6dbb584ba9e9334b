/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no association exists for a host and key
	ErrNotFound = errors.New("association not found")

	// ErrTypeMismatch is returned when a stored value has a different type than requested
	ErrTypeMismatch = errors.New("association type mismatch")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a missing association
type NotFoundError struct {
	Host string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no association %q on %s", e.Key, e.Host)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeMismatchError represents an association stored under another type
type TypeMismatchError struct {
	Key       string
	Stored    string
	Requested string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("association %q holds %s, requested %s", e.Key, e.Stored, e.Requested)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(host, key string) error {
	return &NotFoundError{Host: host, Key: key}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(key, stored, requested string) error {
	return &TypeMismatchError{Key: key, Stored: stored, Requested: requested}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
