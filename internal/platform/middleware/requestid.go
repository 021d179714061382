package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"cidreg/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a UUID, honoring an inbound X-Request-Id so
// IDs survive proxy hops, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), id)
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins the observation time for the whole request. Every derived
// predicate (expiry, renewability) and the price curve read the same instant,
// so a request cannot straddle a state transition.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
