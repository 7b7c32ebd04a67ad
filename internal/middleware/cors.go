// Package middleware holds the HTTP middleware wrapped around the booking API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// preflightMaxAge is how long, in seconds, a browser may reuse a preflight
// answer. The widget issues a preflight for every JSON POST and cancel.
const preflightMaxAge = 600

// NewCORSHandler lets the booking widget call the API from the hotel site.
// allowedOrigins are full origins (scheme and host, no trailing slash).
//
// Only the verbs the API routes use are allowed; bookings are never edited in
// place, so PUT and PATCH are refused. Content-Disposition is exposed so the
// widget can name the downloaded receipt.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         preflightMaxAge,
	})
	return c.Handler
}
