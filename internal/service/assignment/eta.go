package assignment

import (
	"fmt"
	"math"
	"time"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
)

// SpeedKmh returns the average city speed of a transport type.
func SpeedKmh(transport domain.TransportType) (float64, error) {
	switch transport {
	case domain.TransportTypeFoot:
		return 5, nil
	case domain.TransportTypeBicycle:
		return 15, nil
	case domain.TransportTypeScooter:
		return 25, nil
	case domain.TransportTypeCar:
		return 30, nil
	default:
		return 0, fmt.Errorf("unknown transport type: %s", transport)
	}
}

// Estimator predicts when a courier will hand the order over.
type Estimator struct {
	metric geo.Metric
}

// NewEstimator returns an Estimator using m; nil means geo.Planar.
func NewEstimator(m geo.Metric) *Estimator {
	if m == nil {
		m = geo.Planar{}
	}
	return &Estimator{metric: m}
}

// Arrival is now + max(prep time, courier -> restaurant) + restaurant ->
// destination. It returns nil when a location or the speed is unknown.
func (e *Estimator) Arrival(c domain.Courier, o domain.Order, now time.Time) *time.Time {
	if c.Location == nil || o.RestaurantLocation == nil || o.Destination == nil {
		return nil
	}
	speed, err := SpeedKmh(c.TransportType)
	if err != nil {
		return nil
	}

	toRestaurant, err := geo.EstimatedTravelTime(e.metric, *c.Location, *o.RestaurantLocation, speed)
	if err != nil {
		return nil
	}
	toCustomer, err := geo.EstimatedTravelTime(e.metric, *o.RestaurantLocation, *o.Destination, speed)
	if err != nil {
		return nil
	}

	pickup := math.Max(toRestaurant, o.PrepTime.Minutes())
	at := now.Add(time.Duration((pickup + toCustomer) * float64(time.Minute)))
	return &at
}
