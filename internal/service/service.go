// Package service contains the business logic for the booking widget.
// Services validate inputs, enforce business rules, and orchestrate the
// repository and stores. No storage details live here: services depend on the
// small interfaces below, not on concrete backends.
package service

import (
	"context"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/receipt"
)

// BookingStore is the part of repo.BookingRepository the services use.
type BookingStore interface {
	Load(ctx context.Context, activeEmail string) ([]domain.Booking, error)
	Save(ctx context.Context, b domain.Booking) error
	Remove(ctx context.Context, id string) error
	Reset()
	Bookings() []domain.Booking
	Find(id string) (domain.Booking, bool)
	Owner() string
}

// Sessions is the active-session store (repo.SessionStore).
type Sessions interface {
	Current(ctx context.Context) (domain.Session, bool, error)
	Set(ctx context.Context, sess domain.Session) error
	Clear(ctx context.Context) error
}

// Credentials is the registered-account store (repo.CredentialStore).
type Credentials interface {
	Add(ctx context.Context, name, email, password string) (domain.UserAccount, error)
	Verify(ctx context.Context, email, password string) (domain.UserAccount, error)
}

// Catalog looks up bookable items (catalog.Catalog).
type Catalog interface {
	Get(id string) (domain.BookableItem, error)
}

// ReceiptRenderer turns a booking into a downloadable document (receipt.Exporter).
type ReceiptRenderer interface {
	Render(b domain.Booking) (receipt.Document, error)
}
