// Package geo holds pure distance and travel time helpers.
package geo

import (
	"fmt"
	"math"

	"service-courier-tracking/internal/apperr"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether p is finite and inside the coordinate ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Metric measures the distance between two points in kilometres.
type Metric interface {
	Distance(a, b Point) float64
}

// Planar is a straight line on a flat local projection of the two points.
// It ignores earth curvature, which is fine for city-sized distances.
type Planar struct{}

// Distance implements Metric.
func (Planar) Distance(a, b Point) float64 {
	meanLat := degreesToRadians((a.Lat + b.Lat) / 2)
	x := degreesToRadians(wrapLng(b.Lng-a.Lng)) * math.Cos(meanLat)
	y := degreesToRadians(b.Lat - a.Lat)
	return earthRadiusKm * math.Hypot(x, y)
}

// Haversine is the great-circle distance.
type Haversine struct{}

// Distance implements Metric.
func (Haversine) Distance(a, b Point) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := degreesToRadians(wrapLng(b.Lng - a.Lng))

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push h slightly outside [0, 1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// MetricByName resolves "planar" or "haversine".
func MetricByName(name string) (Metric, error) {
	switch name {
	case "", "planar":
		return Planar{}, nil
	case "haversine":
		return Haversine{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown distance metric %q", apperr.ErrInvalid, name)
	}
}

// WithinRadius reports whether point is at most radiusKm from center.
func WithinRadius(m Metric, center, point Point, radiusKm float64) bool {
	return m.Distance(center, point) <= radiusKm
}

// EstimatedTravelTime returns the travel time from a to b in minutes.
func EstimatedTravelTime(m Metric, a, b Point, speedKmh float64) (float64, error) {
	if math.IsNaN(speedKmh) || speedKmh <= 0 {
		return 0, fmt.Errorf("%w: speed must be positive, got %v", apperr.ErrInvalid, speedKmh)
	}
	return m.Distance(a, b) / speedKmh * 60, nil
}

// wrapLng folds a longitude delta into [-180, 180]. Non-finite input gives NaN.
func wrapLng(d float64) float64 {
	return math.Remainder(d, 360)
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
