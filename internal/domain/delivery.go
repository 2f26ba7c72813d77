package domain

import (
	"time"

	"service-courier-tracking/internal/geo"
)

// Delivery links one order to one courier.
type Delivery struct {
	ID               int64
	OrderID          int64
	CourierID        int64
	Status           DeliveryStatus
	CurrentLocation  *geo.Point
	AssignedAt       time.Time
	PickedAt         *time.Time
	CompletedAt      *time.Time
	Deadline         time.Time
	EstimatedArrival *time.Time
}

// Assignment is the outcome of committing a courier to an order.
type Assignment struct {
	DeliveryID       int64
	OrderID          int64
	CourierID        int64
	AssignedAt       time.Time
	Deadline         time.Time
	EstimatedArrival *time.Time
	// OnTime is set when an ETA was computed and it fits the deadline.
	OnTime bool

	// Load is zero when the post-assignment recount failed.
	Load Load
}

// LocationHistoryEntry is an immutable record of a courier position.
type LocationHistoryEntry struct {
	ID         int64
	CourierID  int64
	OrderID    *int64
	Point      geo.Point
	RecordedAt time.Time
}
