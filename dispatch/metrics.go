package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DispatchRequests counts the requests handled by a tree, by root and response status.
	DispatchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webbot_dispatch_requests_total",
		Help: "The total number of requests dispatched through a handler tree",
	}, []string{"root", "status"})

	// RenderDuration records the time terminal handlers take to render a response.
	RenderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webbot_dispatch_render_seconds",
		Help:    "The time (in seconds) terminal handlers take rendering a response",
		Buckets: prometheus.DefBuckets,
	}, []string{"root"})
)

func init() {
	prometheus.MustRegister(DispatchRequests)
	prometheus.MustRegister(RenderDuration)
}
