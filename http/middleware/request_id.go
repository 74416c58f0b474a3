package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/webbot"
)

// RequestIDHeader echoes the ID of a request on its response.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under webbot.RequestIDKey,
// reusing the one a proxy set in RequestIDHeader when it parses.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), webbot.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
