package tracker

import (
	"errors"
	"fmt"
)

// Validation failures. Returned wrapped in a *ValidationError; match with errors.Is.
var (
	ErrInvalidHabitID  = errors.New("invalid habit id")
	ErrInvalidMood     = errors.New("invalid mood")
	ErrWaterOutOfRange = errors.New("water out of range")
	ErrInvalidDate     = errors.New("invalid date")
)

// ValidationError reports malformed input. Nothing has been changed when one is
// returned.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, value any, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// PersistenceError reports that the key-value store could not be read or written.
//
// On load the dashboard falls back to defaults; on save the in-memory state has
// already been updated and remains authoritative for the session.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
