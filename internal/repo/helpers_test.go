package repo_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/repo"
)

// discardLogger keeps expected fallback warnings out of test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockBackend is a hand-written test double for repo.BookingBackend.
// Each method is a function field; set only the ones your test needs.
type mockBackend struct {
	name   string
	all    func(ctx context.Context) ([]domain.Booking, error)
	upsert func(ctx context.Context, bookings ...domain.Booking) error
	delete func(ctx context.Context, id string) error
}

func (m *mockBackend) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}
func (m *mockBackend) All(ctx context.Context) ([]domain.Booking, error) { return m.all(ctx) }
func (m *mockBackend) Upsert(ctx context.Context, bookings ...domain.Booking) error {
	return m.upsert(ctx, bookings...)
}
func (m *mockBackend) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }

// compile-time check: mockBackend must satisfy repo.BookingBackend.
var _ repo.BookingBackend = (*mockBackend)(nil)

// liveBackend adds a readiness signal and a captured subscription callback
// to any backend, standing in for the remote live-sync store.
type liveBackend struct {
	repo.BookingBackend
	ready chan struct{}
	push  chan func([]domain.Booking)
}

func newLiveBackend(inner repo.BookingBackend) *liveBackend {
	return &liveBackend{
		BookingBackend: inner,
		ready:          make(chan struct{}),
		push:           make(chan func([]domain.Booking), 1),
	}
}

func (l *liveBackend) Ready() <-chan struct{} { return l.ready }

func (l *liveBackend) Subscribe(_ context.Context, fn func([]domain.Booking)) error {
	l.push <- fn
	return nil
}

var (
	_ repo.Readier    = (*liveBackend)(nil)
	_ repo.Subscriber = (*liveBackend)(nil)
)

// staticIdentity is a repo.Identity with a settable email.
type staticIdentity struct{ email string }

func (s *staticIdentity) ActiveEmail(context.Context) string { return s.email }

// bookingFixture returns a room booking owned by email and created at the
// given offset from a fixed base time.
func bookingFixture(id, email string, offset time.Duration) domain.Booking {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return domain.Booking{
		ID:            id,
		Kind:          domain.KindRoom,
		ItemID:        "r1",
		ItemName:      "Deluxe Single Room",
		CustomerName:  "Ann",
		CustomerEmail: email,
		CustomerPhone: "+91 90000 00000",
		CheckIn:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		TotalAmount:   5000,
		CreatedAt:     base.Add(offset),
	}
}

func ids(bookings []domain.Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}
