package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/logger"
)

// LogMaskVal replaces the values of scrubbed query parameters.
const LogMaskVal = "xxxxxxx"

// LogRequest logs the originating IP address, method, requested URL and status of each request
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			strs := []string{r.Method, RequestURI(r)}
			if val, ok := r.Context().Value(webbot.IpAddrKey).(string); ok && val != "" {
				strs = append([]string{val}, strs...)
			}

			data := map[string]any{
				"status":   status,
				"size":     sw.size,
				"duration": time.Since(start).String(),
			}
			if id, ok := r.Context().Value(webbot.RequestIDKey).(string); ok {
				data["requestID"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}

// RequestURI returns the path and query of r with sensitive values masked.
func RequestURI(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	if val := q.Get("password"); val != "" {
		q.Set("password", LogMaskVal)
	}

	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	return uri
}
