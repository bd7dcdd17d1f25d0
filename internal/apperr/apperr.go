// Package apperr defines the error taxonomy shared by the stores and
// services. Handlers map these onto HTTP status codes; everything else
// propagates unchanged.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a required record does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// NotFound creates a NotFoundError for the given entity.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// NotUniqueError indicates an insert violated a uniqueness constraint.
// Bulk generation treats this as "already generated, skip"; direct create
// calls surface it as a conflict.
type NotUniqueError struct {
	Entity string
}

func (e *NotUniqueError) Error() string {
	return fmt.Sprintf("%s already exists", e.Entity)
}

// NotUnique creates a NotUniqueError for the given entity.
func NotUnique(entity string) error {
	return &NotUniqueError{Entity: entity}
}

// IsNotUnique reports whether err is (or wraps) a NotUniqueError.
func IsNotUnique(err error) bool {
	var target *NotUniqueError
	return errors.As(err, &target)
}

// NotAuthorizedError indicates an illegal state transition was requested,
// e.g. confirming a player who is not currently assigned. It is distinct
// from a validation failure: the input was well-formed but the current
// state forbids the change.
type NotAuthorizedError struct {
	Reason string
}

func (e *NotAuthorizedError) Error() string {
	if e.Reason == "" {
		return "not authorized"
	}
	return fmt.Sprintf("not authorized: %s", e.Reason)
}

// NotAuthorized creates a NotAuthorizedError with the given reason.
func NotAuthorized(reason string) error {
	return &NotAuthorizedError{Reason: reason}
}

// IsNotAuthorized reports whether err is (or wraps) a NotAuthorizedError.
func IsNotAuthorized(err error) bool {
	var target *NotAuthorizedError
	return errors.As(err, &target)
}
