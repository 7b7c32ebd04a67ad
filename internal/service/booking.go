package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/receipt"
)

// Confirmer asks the user to confirm cancelling a booking.
type Confirmer interface {
	Confirm(ctx context.Context, b domain.Booking) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(ctx context.Context, b domain.Booking) bool

func (f ConfirmFunc) Confirm(ctx context.Context, b domain.Booking) bool { return f(ctx, b) }

// BookingService implements the booking lifecycle: quote, create, list,
// cancel and receipt download for the signed-in user.
type BookingService struct {
	bookings BookingStore
	sessions Sessions
	catalog  Catalog
	receipts ReceiptRenderer
	log      *slog.Logger

	now   func() time.Time
	newID func() (string, error)
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, sessions Sessions, catalog Catalog, receipts ReceiptRenderer, log *slog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		sessions: sessions,
		catalog:  catalog,
		receipts: receipts,
		log:      log,
		now:      time.Now,
		newID:    newBookingID,
	}
}

// newBookingID returns "BK" followed by a time-ordered UUID.
func newBookingID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "BK" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}

// ValidateAndCreate checks input against item and the active session and, if
// everything holds, builds the booking. Checks run in a fixed order and stop
// at the first failure. sess is nil when nobody is signed in.
func (s *BookingService) ValidateAndCreate(input domain.BookingInput, item domain.BookableItem, sess *domain.Session) (domain.Booking, error) {
	if sess == nil || sess.Email == "" {
		return domain.Booking{}, domain.ErrUnauthenticated
	}
	if !input.CheckOut.After(input.CheckIn) {
		return domain.Booking{}, domain.ErrInvalidDateRange
	}
	if input.Guests > item.Capacity {
		return domain.Booking{}, fmt.Errorf("%w: %s holds at most %d guests", domain.ErrCapacityExceeded, item.Name, item.Capacity)
	}
	if input.Guests < 1 {
		return domain.Booking{}, domain.ErrInvalidGuestCount
	}
	eventTime := strings.TrimSpace(input.EventTime)
	if item.Kind == domain.KindHall && eventTime == "" {
		return domain.Booking{}, domain.ErrMissingEventTime
	}

	id, err := s.newID()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.ValidateAndCreate: id: %w", err)
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = sess.Name
	}

	b := domain.Booking{
		ID:            id,
		Kind:          item.Kind,
		ItemID:        item.ID,
		ItemName:      item.Name,
		CustomerName:  name,
		CustomerEmail: sess.Email,
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Guests:        input.Guests,
		TotalAmount:   item.Price * int64(domain.DurationUnits(input.CheckIn, input.CheckOut)),
		CreatedAt:     s.now().UTC(),
	}
	if item.Kind == domain.KindHall {
		b.EventTime = &eventTime
	}
	return b, nil
}

// Quote prices input without creating anything. No session is required.
func (s *BookingService) Quote(ctx context.Context, input domain.BookingInput) (domain.Quote, error) {
	item, err := s.item(input)
	if err != nil {
		return domain.Quote{}, err
	}
	if !input.CheckOut.After(input.CheckIn) {
		return domain.Quote{}, domain.ErrInvalidDateRange
	}
	units := domain.DurationUnits(input.CheckIn, input.CheckOut)
	return domain.Quote{
		Units:     units,
		Unit:      item.Kind.Unit(),
		UnitPrice: item.Price,
		Total:     item.Price * int64(units),
	}, nil
}

// Book validates input for the signed-in user and saves the new booking.
func (s *BookingService) Book(ctx context.Context, input domain.BookingInput) (domain.Booking, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	item, err := s.item(input)
	if err != nil {
		return domain.Booking{}, err
	}
	b, err := s.ValidateAndCreate(input, item, sess)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := s.ensureView(ctx, sess.Email); err != nil {
		return domain.Booking{}, err
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		// Save has already put the booking in the view.
		s.log.WarnContext(ctx, "booking did not reach the backend", "id", b.ID, "error", err)
	}
	s.log.InfoContext(ctx, "booking created", "id", b.ID, "item", b.ItemID, "total", b.TotalAmount)
	return b, nil
}

// List returns the signed-in user's bookings, newest first.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ensureView(ctx, sess.Email); err != nil {
		return nil, err
	}
	return s.bookings.Bookings(), nil
}

// Cancel removes the booking with id after c confirms it. It reports whether
// the user confirmed; a declined cancellation changes nothing. IDs that are not
// among the signed-in user's bookings are ignored.
func (s *BookingService) Cancel(ctx context.Context, id string, c Confirmer) (bool, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return false, err
	}
	if err := s.ensureView(ctx, sess.Email); err != nil {
		return false, err
	}

	b, found := s.bookings.Find(id)
	if !found {
		b = domain.Booking{ID: id}
	}
	if !c.Confirm(ctx, b) {
		return false, nil
	}
	if !found {
		return true, nil
	}
	if err := s.bookings.Remove(ctx, id); err != nil {
		// Remove has already dropped the booking from the view.
		s.log.WarnContext(ctx, "cancel did not reach the backend", "id", id, "error", err)
	}
	s.log.InfoContext(ctx, "booking cancelled", "id", id)
	return true, nil
}

// Receipt renders the receipt for one of the signed-in user's bookings.
func (s *BookingService) Receipt(ctx context.Context, id string) (receipt.Document, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return receipt.Document{}, err
	}
	if err := s.ensureView(ctx, sess.Email); err != nil {
		return receipt.Document{}, err
	}
	b, ok := s.bookings.Find(id)
	if !ok {
		return receipt.Document{}, fmt.Errorf("service.BookingService.Receipt: booking %s: %w", id, domain.ErrNotFound)
	}
	doc, err := s.receipts.Render(b)
	if err != nil {
		return receipt.Document{}, fmt.Errorf("service.BookingService.Receipt: %w", err)
	}
	return doc, nil
}

// item resolves the catalog item named by input. An item of a different kind
// than requested is reported as not found.
func (s *BookingService) item(input domain.BookingInput) (domain.BookableItem, error) {
	item, err := s.catalog.Get(input.ItemID)
	if err != nil {
		return domain.BookableItem{}, err
	}
	if input.Kind != "" && item.Kind != input.Kind {
		return domain.BookableItem{}, fmt.Errorf("%s %q: %w", input.Kind.Label(), input.ItemID, domain.ErrNotFound)
	}
	return item, nil
}

// session returns the active session, or nil when nobody is signed in.
func (s *BookingService) session(ctx context.Context) (*domain.Session, error) {
	sess, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService: session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *BookingService) requireSession(ctx context.Context) (*domain.Session, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// ensureView reloads the repository when its view belongs to someone else.
func (s *BookingService) ensureView(ctx context.Context, email string) error {
	if s.bookings.Owner() == email {
		return nil
	}
	if _, err := s.bookings.Load(ctx, email); err != nil {
		return fmt.Errorf("service.BookingService: load bookings: %w", err)
	}
	return nil
}
