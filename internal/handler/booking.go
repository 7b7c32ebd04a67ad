package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/service"
)

// ListBookings handles GET /bookings.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	data := make([]Booking, len(bookings))
	for i, b := range bookings {
		data[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, BookingList{Data: data})
}

// CreateBooking handles POST /bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeBookingRequest(w, r)
	if !ok {
		return
	}
	b, err := s.bookings.Book(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(b))
}

// QuoteBooking handles POST /bookings/quote.
func (s *Server) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeBookingRequest(w, r)
	if !ok {
		return
	}
	q, err := s.bookings.Quote(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, Quote{Units: q.Units, Unit: q.Unit, UnitPrice: q.UnitPrice, Total: q.Total})
}

// CancelBooking handles DELETE /bookings/{id}?confirm=true.
// Without confirm=true nothing is removed and 428 is returned, so the
// front-end can ask the user and retry.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var confirm *bool
	if err := runtime.BindQueryParameter("form", true, false, "confirm", r.URL.Query(), &confirm); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid confirm parameter")
		return
	}
	confirmed := confirm != nil && *confirm

	cancelled, err := s.bookings.Cancel(r.Context(), id, service.ConfirmFunc(func(context.Context, domain.Booking) bool {
		return confirmed
	}))
	if err != nil {
		s.writeServiceError(w, r, err, "booking not found")
		return
	}
	if !cancelled {
		writeError(w, http.StatusPreconditionRequired, codeConfirmationRequired, "are you sure you want to cancel this booking?")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadReceipt handles GET /bookings/{id}/receipt.
func (s *Server) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	doc, err := s.bookings.Receipt(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "booking not found")
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

func decodeBookingRequest(w http.ResponseWriter, r *http.Request) (domain.BookingInput, bool) {
	var req BookingRequest
	if !decodeBody(w, r, &req) {
		return domain.BookingInput{}, false
	}
	input, err := requestToInput(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
		return domain.BookingInput{}, false
	}
	return input, true
}
