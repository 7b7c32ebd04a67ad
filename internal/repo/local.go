package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/kv"
)

// BookingsKey is the durable store key holding the JSON array of bookings.
const BookingsKey = "hotelBookings"

// LocalBackend is the fallback BookingBackend: a single JSON array stored
// under BookingsKey in a durable key-value store. The array holds the
// bookings of every user, newest first.
type LocalBackend struct {
	store kv.Store
	log   *slog.Logger
	mu    sync.Mutex // serializes read-modify-write cycles
}

// NewLocalBackend constructs a LocalBackend over store.
func NewLocalBackend(store kv.Store, log *slog.Logger) *LocalBackend {
	return &LocalBackend{store: store, log: log}
}

func (l *LocalBackend) Name() string { return "local" }

// All returns the stored array in insertion order. A malformed payload is
// logged and treated as an empty collection.
func (l *LocalBackend) All(ctx context.Context) ([]domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

// Upsert replaces stored bookings that share an ID with the given ones in
// place and prepends the rest, keeping the bookings of other users intact.
func (l *LocalBackend) Upsert(ctx context.Context, bookings ...domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, err := l.read(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(stored))
	for i, b := range stored {
		index[b.ID] = i
	}
	var fresh []domain.Booking
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		if i, ok := index[b.ID]; ok {
			stored[i] = b
			continue
		}
		fresh = append(fresh, b)
	}

	return l.write(ctx, append(fresh, stored...))
}

// Delete filters id out of the stored array and re-persists the remainder.
func (l *LocalBackend) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, err := l.read(ctx)
	if err != nil {
		return err
	}
	kept := withoutID(stored, id)
	if len(kept) == len(stored) {
		return nil
	}
	return l.write(ctx, kept)
}

func (l *LocalBackend) read(ctx context.Context) ([]domain.Booking, error) {
	raw, ok, err := l.store.Get(ctx, BookingsKey)
	if err != nil {
		return nil, fmt.Errorf("repo.LocalBackend: read: %w", err)
	}
	if !ok {
		return []domain.Booking{}, nil
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		l.log.WarnContext(ctx, "treating malformed local bookings as empty",
			"key", BookingsKey, "error", fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
		return []domain.Booking{}, nil
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (l *LocalBackend) write(ctx context.Context, bookings []domain.Booking) error {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("repo.LocalBackend: encode: %w", err)
	}
	if err := l.store.Set(ctx, BookingsKey, raw); err != nil {
		return fmt.Errorf("repo.LocalBackend: write: %w", err)
	}
	return nil
}

var _ BookingBackend = (*LocalBackend)(nil)
