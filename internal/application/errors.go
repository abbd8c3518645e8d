package application

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidTransition is returned when a status change is not reachable from the current status.
	ErrInvalidTransition = errors.New("application: invalid status transition")
	// ErrEventFinalized is returned when a terminal event's interval or trainer would change.
	ErrEventFinalized = errors.New("application: event is in a terminal status")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictError reports that a proposed slot collides with existing bookings.
// Conflicts carries every colliding event so staff can decide whether to
// reschedule or override.
type ConflictError struct {
	Conflicts []Event
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("trainer is already booked (%d conflicting events)", len(c.Conflicts))
}
