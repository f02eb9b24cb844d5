package services

import (
	"errors"
	"fmt"
)

// Sentinels for the two declared failure kinds. Match them with errors.Is;
// store failures never match either.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a referenced plan, step or notification that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
