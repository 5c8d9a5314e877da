// Package domain holds the error kinds shared across the service layers.
//
// Every failure the booking engine can produce is one of three kinds:
// a ValidationError for malformed input, a NotFoundError for a missing
// record, or a ConflictError for an operation that lost to the current
// state of the world. Anything else bubbles up as a plain error and is
// treated as internal by the transport layer.
package domain

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed or missing input. It is always
// raised before any state mutation or persistence takes place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError indicates that an operation addressed an entity that
// does not exist in storage.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError indicates an operation that cannot proceed given the
// current state, such as booking a room that is already taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
