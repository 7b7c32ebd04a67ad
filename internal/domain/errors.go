package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// catalog item or booking does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the parent of every user-correctable error. Each specific
// error below wraps it, so errors.Is(err, ErrValidation) holds for all of them.
// Handlers should map it to HTTP 422 unless a more specific status applies.
var ErrValidation = errors.New("validation error")

// Booking form errors, checked in this order by the booking service.
var (
	ErrUnauthenticated   = fmt.Errorf("%w: please login or register before booking", ErrValidation)
	ErrInvalidDateRange  = fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	ErrCapacityExceeded  = fmt.Errorf("%w: guest count exceeds capacity", ErrValidation)
	ErrInvalidGuestCount = fmt.Errorf("%w: at least one guest is required", ErrValidation)
	ErrMissingEventTime  = fmt.Errorf("%w: event time is required for hall bookings", ErrValidation)
)

// Account errors.
var (
	ErrIncompleteFields   = fmt.Errorf("%w: please fill all fields", ErrValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrEmailAlreadyExists = fmt.Errorf("%w: an account with this email already exists", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrValidation)
)

// Backend errors never reach the user. The fallback backend recovers from
// ErrBackendUnavailable and stores treat ErrMalformedPayload as an empty
// collection; both are only logged.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrMalformedPayload   = errors.New("malformed persisted payload")
)
