package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist, for
// example removing an emergency contact by an unknown id. Callers map it
// to a 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned for a bad email/password pair. It is
// deliberately identical for "unknown email" and "wrong password".
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// ValidationError reports the first field of an input that failed
// validation. The input is rejected atomically: nothing is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// invalidField builds a ValidationError for one named field.
func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PersistenceError wraps a storage failure. The operation that hit it is
// retryable: the previously stored value is intact.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
