// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors reused across repositories so
// higher layers can distinguish failure scenarios: ErrForbidden means the
// caller does not own the addressed resource, ErrConflict means conflicting
// state blocks the operation (e.g. booking a window that was just taken).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot proceed because of
// conflicting state, such as two bookings competing for the same window.
// Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")
