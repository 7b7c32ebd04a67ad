// Package repo contains all persistence logic for the booking widget: the
// interchangeable booking backends (remote live-sync store, local durable
// store, and the fallback decorator between them), the booking repository
// that owns the in-memory view, and the session and credential stores.
package repo

import (
	"context"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// BookingBackend is a store holding the bookings of every user.
// The repository depends on this interface, not on a concrete store, so the
// backend is chosen once at construction time.
type BookingBackend interface {
	// Name identifies the backend in log lines.
	Name() string

	// All returns every stored booking, regardless of owner.
	All(ctx context.Context) ([]domain.Booking, error)

	// Upsert inserts each booking, replacing any stored booking with the same ID.
	Upsert(ctx context.Context, bookings ...domain.Booking) error

	// Delete removes a booking by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// Readier is implemented by backends that are not usable until an external
// readiness signal fires. The returned channel is closed once ready.
type Readier interface {
	Ready() <-chan struct{}
}

// Subscriber is implemented by live-sync backends. fn is called with the full
// current set of bookings after every change, until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, fn func([]domain.Booking)) error
}
