package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// healthPath is polled by the container runtime; logging it at INFO would
// drown the booking traffic.
const healthPath = "/healthz"

// NewSlogLogger returns a middleware that writes one structured line per
// request to log. Besides method, path, status and duration it records the
// matched chi route, so /bookings/BK.../receipt downloads group under one
// pattern, and the request ID set by chimiddleware.RequestID.
//
// Wire it after chimiddleware.RequestID so the request ID is available.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Log(r.Context(), requestLevel(r.URL.Path, ww.Status()), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

// requestLevel picks ERROR for server faults, DEBUG for successful health
// probes and INFO for everything else.
func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case path == healthPath:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// routePattern is "" when the request never reached a chi router.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
