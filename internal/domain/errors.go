package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a NotFoundError for the given entity and identifier.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ValidationError carries one message per violated field constraint.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError with a single message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Messages: []string{message}}
}

// NewValidationErrors creates a ValidationError from a list of field messages.
func NewValidationErrors(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// ConflictError indicates a request that clashes with current state
// (slot overlap, space under maintenance, duplicate key).
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// MalformedReferenceError indicates an identifier not in the expected format.
type MalformedReferenceError struct {
	Value string
}

// NewMalformedReferenceError creates a MalformedReferenceError for the given value.
func NewMalformedReferenceError(value string) *MalformedReferenceError {
	return &MalformedReferenceError{Value: value}
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed identifier: %s", e.Value)
}

// UnauthorizedError indicates a missing or invalid credential.
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError creates an UnauthorizedError with the given message.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// ForbiddenError indicates an authenticated caller lacking the required role.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
