// Package repository contains the data access layer, separated from HTTP
// handlers.  This file defines sentinel errors reused across repositories
// so handlers can distinguish failure scenarios: ErrForbidden means the
// caller does not own the resource (HTTP 403), ErrConflict means dependent
// records block the operation (HTTP 409), and ErrSlotTaken means the
// requested stylist/date/time-slot combination is already booked (HTTP 409
// with a slot-specific message the API client classifies as retryable).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because of
// conflicting state, such as deleting a service with active appointments.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned when an appointment insert or reschedule targets
// a stylist/date/slot that already has a live appointment.
var ErrSlotTaken = errors.New("time slot already booked")
