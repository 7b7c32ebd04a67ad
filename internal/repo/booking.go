package repo

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// Identity reports the email of the active session, or "" when nobody is
// signed in. The SessionStore implements it.
type Identity interface {
	ActiveEmail(ctx context.Context) string
}

// BookingRepository owns the authoritative in-memory list of the active
// user's bookings and keeps it consistent with the backend.
//
// Every mutation replaces the list under the mutex before change listeners
// run, so no caller ever observes a partially applied mutation. Live-sync
// callbacks take the same mutex; whichever replacement happens last wins.
// Save and Remove also hold writeMu across the backend call, so a snapshot
// written by Save can never restore a booking a later Remove deleted.
type BookingRepository struct {
	backend BookingBackend
	log     *slog.Logger

	writeMu sync.Mutex // serializes Save and Remove end to end

	mu        sync.Mutex
	view      []domain.Booking
	owner     string // email the view is filtered to; "" when empty
	listeners []func([]domain.Booking)

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewBookingRepository constructs a repository over backend with an empty view.
func NewBookingRepository(backend BookingBackend, log *slog.Logger) *BookingRepository {
	return &BookingRepository{backend: backend, log: log, view: []domain.Booking{}}
}

// Load fetches every booking from the backend, keeps those whose
// CustomerEmail equals activeEmail exactly, and makes them the view, newest
// first. An empty activeEmail means no session: the view is cleared and the
// backend is not consulted.
func (r *BookingRepository) Load(ctx context.Context, activeEmail string) ([]domain.Booking, error) {
	if activeEmail == "" {
		r.replace("", nil)
		return []domain.Booking{}, nil
	}

	all, err := r.backend.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepository.Load: %w", err)
	}
	view := ownedBy(all, activeEmail)
	r.replace(activeEmail, view)
	return slices.Clone(view), nil
}

// Save puts b at the head of the view and persists the whole view.
// The view changes even when persisting fails. Change listeners must not
// call Save or Remove.
func (r *BookingRepository) Save(ctx context.Context, b domain.Booking) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	r.view = append([]domain.Booking{b}, withoutID(r.view, b.ID)...)
	if r.owner == "" {
		r.owner = b.CustomerEmail
	}
	snapshot := slices.Clone(r.view)
	r.mu.Unlock()
	r.notify(snapshot)

	if err := r.backend.Upsert(ctx, snapshot...); err != nil {
		return fmt.Errorf("repo.BookingRepository.Save: %w", err)
	}
	return nil
}

// Remove deletes id from the backend and drops it from the view. The view is
// updated whatever the backend outcome. Removing an unknown ID is a no-op.
func (r *BookingRepository) Remove(ctx context.Context, id string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	err := r.backend.Delete(ctx, id)

	r.mu.Lock()
	r.view = withoutID(r.view, id)
	snapshot := slices.Clone(r.view)
	r.mu.Unlock()
	r.notify(snapshot)

	if err != nil {
		return fmt.Errorf("repo.BookingRepository.Remove: %w", err)
	}
	return nil
}

// Reset empties the view without touching the backend. Logout uses it so the
// previous user's bookings disappear at once.
func (r *BookingRepository) Reset() {
	r.replace("", nil)
}

// Bookings returns a copy of the current view.
func (r *BookingRepository) Bookings() []domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.view)
}

// Find returns the booking with the given ID from the current view.
func (r *BookingRepository) Find(id string) (domain.Booking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.view {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// Owner returns the email the current view belongs to, or "".
func (r *BookingRepository) Owner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner
}

// OnChange registers fn to be called with a copy of the view after every
// replacement. It is the hook the UI uses to re-render.
func (r *BookingRepository) OnChange(fn func([]domain.Booking)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// SubscribeToBackend runs onReady once the backend can serve requests.
// Backends without a readiness signal run it immediately, on the calling
// goroutine. Otherwise it runs on a goroutine after the signal, unless ctx
// ends first.
func (r *BookingRepository) SubscribeToBackend(ctx context.Context, onReady func(context.Context)) {
	rd, ok := r.backend.(Readier)
	if !ok {
		onReady(ctx)
		return
	}
	select {
	case <-rd.Ready():
		onReady(ctx)
		return
	default:
	}

	r.log.InfoContext(ctx, "waiting for booking backend", "backend", r.backend.Name())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		select {
		case <-rd.Ready():
			onReady(ctx)
		case <-ctx.Done():
		}
	}()
}

// Init starts the repository: once the backend is ready it loads the view for
// the active session and, for live-sync backends, subscribes so that every
// remote change is re-filtered for whoever is signed in at that moment.
// Close stops it.
func (r *BookingRepository) Init(ctx context.Context, identity Identity) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	r.SubscribeToBackend(ctx, func(ctx context.Context) {
		if _, err := r.Load(ctx, identity.ActiveEmail(ctx)); err != nil {
			r.log.ErrorContext(ctx, "initial booking load failed", "error", err)
		}
		sub, ok := r.backend.(Subscriber)
		if !ok {
			return
		}
		err := sub.Subscribe(ctx, func(all []domain.Booking) {
			email := identity.ActiveEmail(ctx)
			if email == "" {
				r.replace("", nil)
				return
			}
			r.replace(email, ownedBy(all, email))
		})
		if err != nil {
			r.log.WarnContext(ctx, "live booking updates unavailable", "error", err)
		}
	})
}

// Close stops the live-sync subscription and waits for a pending readiness
// wait to return.
func (r *BookingRepository) Close() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

func (r *BookingRepository) replace(owner string, view []domain.Booking) {
	if view == nil {
		view = []domain.Booking{}
	}
	r.mu.Lock()
	r.owner = owner
	r.view = view
	snapshot := slices.Clone(view)
	r.mu.Unlock()
	r.notify(snapshot)
}

func (r *BookingRepository) notify(snapshot []domain.Booking) {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(slices.Clone(snapshot))
	}
}

// ownedBy returns the bookings whose CustomerEmail equals email, newest first.
// Bookings with equal CreatedAt keep their relative order.
func ownedBy(all []domain.Booking, email string) []domain.Booking {
	out := []domain.Booking{}
	for _, b := range all {
		if b.CustomerEmail == email {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func withoutID(bookings []domain.Booking, id string) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
