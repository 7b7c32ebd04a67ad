package middleware

import "net/http"

// tooLargeBody matches the error envelope the API handlers write, so the
// widget shows the same message whichever layer refused the request.
const tooLargeBody = `{"error":{"code":"request_too_large","message":"request body too large"}}` + "\n"

// NewMaxBodySizeHandler caps request bodies at limit bytes. A declared
// Content-Length above the limit is refused with 413 before the handler runs.
// Bodies of unknown length are wrapped in http.MaxBytesReader; the JSON
// decoder in the handler then reports the overflow.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
