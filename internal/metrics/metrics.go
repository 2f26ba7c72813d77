package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewEventPublishRetriesTotal counts retried status event publishes.
func NewEventPublishRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "event_publish_retries_total",
		Help: "Total number of retry attempts performed when publishing status events",
	})
}

// NewCourierAssignmentsTotal counts assignment attempts by result.
func NewCourierAssignmentsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_assignments_total",
		Help: "Courier assignment attempts by result",
	}, []string{"result"})
}

// NewRoomBroadcastDeliveriesTotal counts per-subscriber room deliveries by result.
func NewRoomBroadcastDeliveriesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "room_broadcast_deliveries_total",
		Help: "Room event deliveries to subscribers by result",
	}, []string{"result"})
}

// NewWSConnections tracks open websocket connections.
func NewWSConnections() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Open websocket connections",
	})
}

// NewHTTPRequestsTotal counts served requests by method, route pattern and status.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration observes request latency by method, route pattern and status.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
