package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts requests by status code and method.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webbot_http_requests_total",
		Help: "The number of HTTP requests served",
	}, []string{"code", "method"})

	// HTTPDuration observes how long requests take to serve.
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webbot_http_request_duration_seconds",
		Help:    "The time taken to serve HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method"})

	// HTTPInFlight gauges requests being served.
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "webbot_http_in_flight_requests",
		Help: "The number of HTTP requests currently being served",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, HTTPInFlight)
}

// Metrics instruments every request with HTTPRequests, HTTPDuration and HTTPInFlight.
func Metrics() Adapter {
	return func(h http.Handler) http.Handler {
		h = promhttp.InstrumentHandlerCounter(HTTPRequests, h)
		h = promhttp.InstrumentHandlerDuration(HTTPDuration, h)
		return promhttp.InstrumentHandlerInFlight(HTTPInFlight, h)
	}
}
