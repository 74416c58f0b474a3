package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/session"
)

// InjectSession stores the session associated with the *http.Request
// in *http.Request.Context under webbot.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
// A session failing to load, i.e. a cookie signed with rotated keys, is replaced by a new one.
func InjectSession(store session.Storer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), webbot.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
