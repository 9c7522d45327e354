package middleware

import "net/http"

// MaxBodyBytes is the request-body ceiling: large enough for a rich-text
// event document, small enough to bound per-request memory.
const MaxBodyBytes = 64 << 10

// MaxBytes caps the readable request body. Handlers decoding past the
// cap get *http.MaxBytesError and respond 413.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = MaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
