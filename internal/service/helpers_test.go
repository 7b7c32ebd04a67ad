package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/grand-plaza/internal/catalog"
	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/kv"
	"github.com/pkordes/grand-plaza/internal/receipt"
	"github.com/pkordes/grand-plaza/internal/repo"
	"github.com/pkordes/grand-plaza/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSessions is a hand-written test double for service.Sessions.
// Each method is a function field; set only the ones your test needs.
type mockSessions struct {
	current func(ctx context.Context) (domain.Session, bool, error)
	set     func(ctx context.Context, sess domain.Session) error
	clear   func(ctx context.Context) error
}

func (m *mockSessions) Current(ctx context.Context) (domain.Session, bool, error) {
	return m.current(ctx)
}
func (m *mockSessions) Set(ctx context.Context, sess domain.Session) error { return m.set(ctx, sess) }
func (m *mockSessions) Clear(ctx context.Context) error { return m.clear(ctx) }

// compile-time check: mockSessions must satisfy service.Sessions.
var _ service.Sessions = (*mockSessions)(nil)

// mockRenderer is a hand-written test double for service.ReceiptRenderer.
type mockRenderer struct {
	render func(b domain.Booking) (receipt.Document, error)
}

func (m *mockRenderer) Render(b domain.Booking) (receipt.Document, error) { return m.render(b) }

var _ service.ReceiptRenderer = (*mockRenderer)(nil)

// stack wires both services over in-memory stores, the way main wires them
// over SQLite and Postgres.
type stack struct {
	auth     *service.AuthService
	bookings *service.BookingService
	repo     *repo.BookingRepository
	local    *repo.LocalBackend
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := discardLogger()

	durable := kv.NewMemory()
	local := repo.NewLocalBackend(durable, log)
	bookings := repo.NewBookingRepository(local, log)
	sessions := repo.NewSessionStore(kv.NewMemory(), log)
	credentials := repo.NewCredentialStore(durable, bcrypt.MinCost, log)

	renderer := &mockRenderer{render: func(b domain.Booking) (receipt.Document, error) {
		return receipt.Document{Filename: receipt.Filename(b.ID), ContentType: receipt.ContentType, Body: []byte("%PDF")}, nil
	}}

	svc := service.NewBookingService(bookings, sessions, catalog.Default(), renderer, log)
	seq := 0
	svc.SetClock(
		func() time.Time { return time.Date(2025, 6, 1, 9, 0, seq, 0, time.UTC) },
		func() (string, error) {
			seq++
			return fmt.Sprintf("BK%d", seq), nil
		},
	)

	return &stack{
		auth:     service.NewAuthService(credentials, sessions, bookings, log),
		bookings: svc,
		repo:     bookings,
		local:    local,
	}
}

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

// roomInput books the Executive Double Room (capacity 4, 4000 a night).
func roomInput() domain.BookingInput {
	return domain.BookingInput{
		Kind:          domain.KindRoom,
		ItemID:        "r2",
		CustomerName:  "Asha",
		CustomerPhone: "555-0100",
		CheckIn:       date(10),
		CheckOut:      date(12),
		Guests:        2,
	}
}

// hallInput books the Conference Hall (15000 a day).
func hallInput() domain.BookingInput {
	return domain.BookingInput{
		Kind:      domain.KindHall,
		ItemID:    "h1",
		CheckIn:   date(10),
		CheckOut:  date(11),
		Guests:    50,
		EventTime: "18:30",
	}
}

// answer returns a Confirmer that always gives the same reply.
func answer(yes bool) service.ConfirmFunc {
	return func(context.Context, domain.Booking) bool { return yes }
}
