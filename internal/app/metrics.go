package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-courier-tracking/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal       prometheus.Counter     `name:"rate_limit_exceeded_total"`
	EventPublishRetriesTotal     prometheus.Counter     `name:"event_publish_retries_total"`
	CourierAssignmentsTotal      *prometheus.CounterVec `name:"courier_assignments_total"`
	RoomBroadcastDeliveriesTotal *prometheus.CounterVec `name:"room_broadcast_deliveries_total"`
	WSConnections                prometheus.Gauge         `name:"ws_connections"`
	HTTPRequestsTotal            *prometheus.CounterVec   `name:"http_requests_total"`
	HTTPRequestDuration          *prometheus.HistogramVec `name:"http_request_duration_seconds"`
}

func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.EventPublishRetriesTotal, err = register("event_publish_retries_total", metrics.NewEventPublishRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.CourierAssignmentsTotal, err = register("courier_assignments_total", metrics.NewCourierAssignmentsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.RoomBroadcastDeliveriesTotal, err = register("room_broadcast_deliveries_total", metrics.NewRoomBroadcastDeliveriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.WSConnections, err = register("ws_connections", metrics.NewWSConnections()); err != nil {
		return metricsOut{}, err
	}
	if out.HTTPRequestsTotal, err = register("http_requests_total", metrics.NewHTTPRequestsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.HTTPRequestDuration, err = register("http_request_duration_seconds", metrics.NewHTTPRequestDuration()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

// register adds c to the default registry. A collector registered earlier
// under the same descriptor is returned instead.
func register[T prometheus.Collector](name string, c T) (T, error) {
	err := prometheus.DefaultRegisterer.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("register %s: %w", name, err)
}
