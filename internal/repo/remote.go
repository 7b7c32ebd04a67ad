package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// notifyChannel is the Postgres channel the bookings trigger publishes on.
const notifyChannel = "bookings_changed"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// pool is the extra surface of *pgxpool.Pool needed for readiness checks and
// LISTEN. A transaction does not provide it.
type pool interface {
	Ping(ctx context.Context) error
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

// RemoteBackend is the live-sync BookingBackend backed by Postgres.
// Each booking is one row keyed by its ID with the booking as a JSONB payload;
// a trigger publishes on notifyChannel whenever the table changes.
type RemoteBackend struct {
	db   db
	pool pool // nil when db is a transaction
	log  *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewRemoteBackend constructs a RemoteBackend over db.
// In production pass *pgxpool.Pool and call WaitReady; in tests pass a pgx.Tx,
// which is considered ready immediately and does not support Subscribe.
func NewRemoteBackend(db db, log *slog.Logger) *RemoteBackend {
	r := &RemoteBackend{db: db, log: log, ready: make(chan struct{})}
	if p, ok := db.(pool); ok {
		r.pool = p
	} else {
		r.markReady()
	}
	return r
}

func (r *RemoteBackend) Name() string { return "remote" }

// Ready is closed once the database has answered a ping.
func (r *RemoteBackend) Ready() <-chan struct{} { return r.ready }

func (r *RemoteBackend) markReady() {
	r.readyOnce.Do(func() { close(r.ready) })
}

// WaitReady pings the database every interval until it answers and prepare
// (if not nil) succeeds, then closes the Ready channel. prepare usually
// applies the schema. It returns early with ctx's error if ctx ends first.
func (r *RemoteBackend) WaitReady(ctx context.Context, interval time.Duration, prepare func(context.Context) error) error {
	if r.pool == nil {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := r.pool.Ping(ctx)
		if err == nil && prepare != nil {
			err = prepare(ctx)
		}
		if err == nil {
			r.log.InfoContext(ctx, "remote booking store ready")
			r.markReady()
			return nil
		}
		r.log.WarnContext(ctx, "remote booking store not ready", "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// All returns every booking, newest first. Rows whose payload cannot be
// decoded are skipped and logged.
func (r *RemoteBackend) All(ctx context.Context) ([]domain.Booking, error) {
	const q = `SELECT id, payload FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RemoteBackend.All: %w: %w", domain.ErrBackendUnavailable, err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("repo.RemoteBackend.All: scan: %w", err)
		}
		var b domain.Booking
		if err := json.Unmarshal(payload, &b); err != nil {
			r.log.WarnContext(ctx, "skipping malformed remote booking", "id", id, "error", err)
			continue
		}
		b.ID = id
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RemoteBackend.All: rows: %w: %w", domain.ErrBackendUnavailable, err)
	}
	return bookings, nil
}

// Upsert writes all bookings in a single batch, replacing rows with the same ID.
func (r *RemoteBackend) Upsert(ctx context.Context, bookings ...domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	const q = `
		INSERT INTO bookings (id, customer_email, created_at, payload)
		VALUES (@id, @customer_email, @created_at, @payload)
		ON CONFLICT (id) DO UPDATE
		SET customer_email = EXCLUDED.customer_email,
		    created_at     = EXCLUDED.created_at,
		    payload        = EXCLUDED.payload`

	batch := &pgx.Batch{}
	for _, b := range bookings {
		payload, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("repo.RemoteBackend.Upsert: encode %s: %w", b.ID, err)
		}
		batch.Queue(q, pgx.NamedArgs{
			"id":             b.ID,
			"customer_email": b.CustomerEmail,
			"created_at":     b.CreatedAt,
			"payload":        payload,
		})
	}

	br := r.db.SendBatch(ctx, batch)
	for range bookings {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("repo.RemoteBackend.Upsert: %w: %w", domain.ErrBackendUnavailable, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("repo.RemoteBackend.Upsert: %w: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Delete removes the row for id. A missing row is not an error.
func (r *RemoteBackend) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM bookings WHERE id = @id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.RemoteBackend.Delete: %w: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Subscribe holds a pooled connection in LISTEN on notifyChannel and calls fn
// with the full booking set after each notification. It returns once the
// LISTEN is established; delivery continues on a goroutine until ctx ends or
// the connection fails.
func (r *RemoteBackend) Subscribe(ctx context.Context, fn func([]domain.Booking)) error {
	if r.pool == nil {
		return fmt.Errorf("repo.RemoteBackend.Subscribe: live updates need a connection pool")
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("repo.RemoteBackend.Subscribe: acquire: %w: %w", domain.ErrBackendUnavailable, err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return fmt.Errorf("repo.RemoteBackend.Subscribe: listen: %w: %w", domain.ErrBackendUnavailable, err)
	}

	go func() {
		defer conn.Release()
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					r.log.WarnContext(ctx, "remote booking subscription stopped", "error", err)
				}
				return
			}
			all, err := r.All(ctx)
			if err != nil {
				r.log.WarnContext(ctx, "remote booking refresh failed", "error", err)
				continue
			}
			fn(all)
		}
	}()
	return nil
}

var (
	_ BookingBackend = (*RemoteBackend)(nil)
	_ Readier        = (*RemoteBackend)(nil)
	_ Subscriber     = (*RemoteBackend)(nil)
)
