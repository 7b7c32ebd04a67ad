package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/grand-plaza/internal/middleware"
)

const bookingBody = `{"itemId":"r2","kind":"room","checkIn":"2025-06-10","checkOut":"2025-06-12","guests":2}`

// decodingHandler decodes a booking request the way the API handlers do and
// answers 413 when the body limit trips, 201 otherwise.
var decodingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
})

func TestMaxBodySizeHandler_BookingWithinLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(1024)(decodingHandler)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(bookingBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMaxBodySizeHandler_DeclaredLengthOverLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(32)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(bookingBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "request_too_large", body.Error.Code)
}

func TestMaxBodySizeHandler_StreamedBodyOverLimit(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(32)(decodingHandler)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(bookingBody))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
