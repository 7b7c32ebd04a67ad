package repo

import (
	"context"
	"log/slog"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// FallbackBackend tries every operation on the primary backend and replays
// it on the secondary when the primary fails. Failures of the primary are
// logged, never returned; only a failure of the secondary reaches the caller.
//
// Readiness and live updates come from the primary.
type FallbackBackend struct {
	primary   BookingBackend
	secondary BookingBackend
	log       *slog.Logger
}

// NewFallbackBackend wraps primary (normally the RemoteBackend) with an
// automatic fallback to secondary (normally the LocalBackend).
func NewFallbackBackend(primary, secondary BookingBackend, log *slog.Logger) *FallbackBackend {
	return &FallbackBackend{primary: primary, secondary: secondary, log: log}
}

func (f *FallbackBackend) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

func (f *FallbackBackend) All(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := f.primary.All(ctx)
	if err == nil {
		return bookings, nil
	}
	f.fellBack(ctx, "load", err)
	return f.secondary.All(ctx)
}

func (f *FallbackBackend) Upsert(ctx context.Context, bookings ...domain.Booking) error {
	err := f.primary.Upsert(ctx, bookings...)
	if err == nil {
		return nil
	}
	f.fellBack(ctx, "save", err)
	return f.secondary.Upsert(ctx, bookings...)
}

func (f *FallbackBackend) Delete(ctx context.Context, id string) error {
	err := f.primary.Delete(ctx, id)
	if err == nil {
		return nil
	}
	f.fellBack(ctx, "delete", err)
	return f.secondary.Delete(ctx, id)
}

// Ready forwards the primary's readiness signal. A primary without one is
// ready immediately.
func (f *FallbackBackend) Ready() <-chan struct{} {
	if r, ok := f.primary.(Readier); ok {
		return r.Ready()
	}
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Subscribe forwards to the primary. A primary without live updates makes
// this a no-op.
func (f *FallbackBackend) Subscribe(ctx context.Context, fn func([]domain.Booking)) error {
	if s, ok := f.primary.(Subscriber); ok {
		return s.Subscribe(ctx, fn)
	}
	return nil
}

func (f *FallbackBackend) fellBack(ctx context.Context, op string, err error) {
	f.log.WarnContext(ctx, "booking backend failed, using fallback",
		"op", op,
		"backend", f.primary.Name(),
		"fallback", f.secondary.Name(),
		"error", err,
	)
}

var (
	_ BookingBackend = (*FallbackBackend)(nil)
	_ Readier        = (*FallbackBackend)(nil)
	_ Subscriber     = (*FallbackBackend)(nil)
)
