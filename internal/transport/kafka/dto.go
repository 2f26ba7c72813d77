package kafka

import (
	"strings"
	"time"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/service/orders"
)

// LocationDTO is a coordinate pair on the wire.
type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *LocationDTO) point() *geo.Point {
	if l == nil {
		return nil
	}
	return &geo.Point{Lat: l.Lat, Lng: l.Lng}
}

// EventDTO is an order event from the orders topic.
type EventDTO struct {
	OrderID           int64        `json:"order_id"`
	Status            string       `json:"status"`
	CustomerID        int64        `json:"customer_id,omitempty"`
	RestaurantID      int64        `json:"restaurant_id,omitempty"`
	RestaurantOwnerID int64        `json:"restaurant_owner_id,omitempty"`
	Restaurant        *LocationDTO `json:"restaurant_location,omitempty"`
	Destination       *LocationDTO `json:"delivery_location,omitempty"`
	PrepTimeMinutes   int          `json:"prep_time_minutes,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:           dto.OrderID,
		Status:            strings.TrimSpace(dto.Status),
		CustomerID:        dto.CustomerID,
		RestaurantID:      dto.RestaurantID,
		RestaurantOwnerID: dto.RestaurantOwnerID,
		Restaurant:        dto.Restaurant.point(),
		Destination:       dto.Destination.point(),
		PrepTime:          time.Duration(dto.PrepTimeMinutes) * time.Minute,
		CreatedAt:         dto.CreatedAt,
	}
}

// StatusEventDTO is a committed status change on the status topic.
type StatusEventDTO struct {
	OrderID   int64     `json:"order_id"`
	From      string    `json:"from"`
	Status    string    `json:"status"`
	CourierID *int64    `json:"courier_id,omitempty"`
	ChangedBy int64     `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// FromStatusChange converts a status change to its wire form.
func FromStatusChange(c domain.StatusChange) StatusEventDTO {
	return StatusEventDTO{
		OrderID:   c.OrderID,
		From:      string(c.From),
		Status:    string(c.To),
		CourierID: c.CourierID,
		ChangedBy: c.ChangedBy,
		ChangedAt: c.ChangedAt.UTC(),
	}
}
