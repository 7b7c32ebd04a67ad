package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/grand-plaza/internal/catalog"
	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/handler"
	"github.com/pkordes/grand-plaza/internal/receipt"
	"github.com/pkordes/grand-plaza/internal/service"
)

// mockBookingServicer is a test double for handler.BookingServicer.
// Set only the method fields your test needs.
type mockBookingServicer struct {
	quote   func(ctx context.Context, input domain.BookingInput) (domain.Quote, error)
	book    func(ctx context.Context, input domain.BookingInput) (domain.Booking, error)
	list    func(ctx context.Context) ([]domain.Booking, error)
	cancel  func(ctx context.Context, id string, c service.Confirmer) (bool, error)
	receipt func(ctx context.Context, id string) (receipt.Document, error)
}

func (m *mockBookingServicer) Quote(ctx context.Context, input domain.BookingInput) (domain.Quote, error) {
	return m.quote(ctx, input)
}
func (m *mockBookingServicer) Book(ctx context.Context, input domain.BookingInput) (domain.Booking, error) {
	return m.book(ctx, input)
}
func (m *mockBookingServicer) List(ctx context.Context) ([]domain.Booking, error) {
	return m.list(ctx)
}
func (m *mockBookingServicer) Cancel(ctx context.Context, id string, c service.Confirmer) (bool, error) {
	return m.cancel(ctx, id, c)
}
func (m *mockBookingServicer) Receipt(ctx context.Context, id string) (receipt.Document, error) {
	return m.receipt(ctx, id)
}

// compile-time check: mockBookingServicer must satisfy handler.BookingServicer.
var _ handler.BookingServicer = (*mockBookingServicer)(nil)

// mockAuthServicer is a test double for handler.AuthServicer.
type mockAuthServicer struct {
	register func(ctx context.Context, name, email, password, confirm string) (domain.Session, error)
	login    func(ctx context.Context, email, password string) (domain.Session, error)
	logout   func(ctx context.Context) error
	current  func(ctx context.Context) (domain.Session, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, name, email, password, confirm string) (domain.Session, error) {
	return m.register(ctx, name, email, password, confirm)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Logout(ctx context.Context) error { return m.logout(ctx) }
func (m *mockAuthServicer) Current(ctx context.Context) (domain.Session, error) {
	return m.current(ctx)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const testAPIDoc = "openapi: 3.0.3\n"

// newHTTPHandler wires a Server with the given mocks into the chi router,
// the same way main.go wires it in production.
func newHTTPHandler(bookings handler.BookingServicer, auth handler.AuthServicer) http.Handler {
	srv := handler.NewServer(bookings, auth, catalog.Default(), []byte(testAPIDoc), nil)
	return handler.Handler(srv)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
