// Package handler implements the HTTP handlers for the booking widget API.
// Methods are split into domain-specific files (health.go, catalog.go, etc.)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/receipt"
	"github.com/pkordes/grand-plaza/internal/service"
)

// BookingServicer defines the booking operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type BookingServicer interface {
	Quote(ctx context.Context, input domain.BookingInput) (domain.Quote, error)
	Book(ctx context.Context, input domain.BookingInput) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id string, c service.Confirmer) (bool, error)
	Receipt(ctx context.Context, id string) (receipt.Document, error)
}

// AuthServicer defines the account and session operations.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password, confirm string) (domain.Session, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (domain.Session, error)
}

// CatalogReader serves the static room and hall listing.
type CatalogReader interface {
	All() []domain.BookableItem
	ByKind(kind domain.Kind) []domain.BookableItem
	Get(id string) (domain.BookableItem, error)
}

// Server holds the dependencies of every HTTP handler.
type Server struct {
	bookings BookingServicer
	auth     AuthServicer
	catalog  CatalogReader
	apiDoc   []byte
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// apiDoc is served verbatim at /openapi.yaml.
func NewServer(bookings BookingServicer, auth AuthServicer, catalog CatalogReader, apiDoc []byte, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{bookings: bookings, auth: auth, catalog: catalog, apiDoc: apiDoc, log: log}
}

// Handler returns a chi router with every API route registered on s.
// Cross-cutting middleware is added by the caller.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/catalog", s.ListCatalog)
	r.Get("/catalog/{id}", s.GetCatalogItem)

	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)
	r.Post("/auth/logout", s.Logout)
	r.Get("/auth/session", s.GetSession)

	r.Get("/bookings", s.ListBookings)
	r.Post("/bookings", s.CreateBooking)
	r.Post("/bookings/quote", s.QuoteBooking)
	r.Delete("/bookings/{id}", s.CancelBooking)
	r.Get("/bookings/{id}/receipt", s.DownloadReceipt)

	return r
}
