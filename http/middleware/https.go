package middleware

import (
	"net/http"
	"slices"

	"github.com/xy-planning-network/webbot"
)

// ForceHTTPS permanently redirects plain HTTP requests to HTTPS, keeping their path and query,
// so a dispatch request like /Home/?requestHandler=home-comments arrives intact.
//
// Development and testing environments are left alone, as are the exempt paths,
// such as a metrics path scraped from inside the network.
// "X-Forwarded-Proto" tells requests a TLS-terminating proxy received over HTTPS.
func ForceHTTPS(env webbot.Environment, exempt ...string) Adapter {
	if env.IsDevelopment() || env.IsTesting() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" || slices.Contains(exempt, r.URL.Path) {
				handler.ServeHTTP(w, r)
				return
			}

			u := *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
