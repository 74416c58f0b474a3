package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/webbot"
)

// ReportPanic recovers and reports panics to Sentry outside of development
// by wrapping handlers in sentryhttp.
//
// In development, NoopAdapter returns so panics surface.
func ReportPanic(env webbot.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
