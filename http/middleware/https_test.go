package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	tcs := []struct {
		name     string
		env      webbot.Environment
		target   string
		proto    string
		status   int
		location string
	}{
		{"development", webbot.Development, "http://example.com/Home/", "", http.StatusOK, ""},
		{"testing", webbot.Testing, "http://example.com/Home/", "", http.StatusOK, ""},
		{"behind-proxy", webbot.Production, "http://example.com/Home/", "https", http.StatusOK, ""},
		{"tls", webbot.Production, "https://example.com/Home/", "", http.StatusOK, ""},
		{"exempt", webbot.Production, "http://example.com/metrics", "", http.StatusOK, ""},
		{
			"redirect",
			webbot.Staging,
			"http://example.com/Home/?requestHandler=home-comments",
			"http",
			http.StatusPermanentRedirect,
			"https://example.com/Home/?requestHandler=home-comments",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			// Act
			middleware.ForceHTTPS(tc.env, "/metrics")(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
