// Package realtime fans order events out to the connections watching an
// order.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType names an event pushed to a room.
type EventType string

const (
	EventStatusUpdate   EventType = "STATUS_UPDATE"
	EventLocationUpdate EventType = "LOCATION_UPDATE"
)

// Event is the frame delivered to room members.
type Event struct {
	Type      EventType       `json:"type"`
	Room      string          `json:"room"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// OrderRoom returns the room of an order.
func OrderRoom(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

// NewEvent marshals data into an event for the order's room.
func NewEvent(t EventType, orderID int64, data any, at time.Time) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s: %w", t, err)
	}
	return Event{Type: t, Room: OrderRoom(orderID), Data: raw, Timestamp: at.UTC()}, nil
}

// StatusPayload is the data of a STATUS_UPDATE event.
type StatusPayload struct {
	OrderID   int64     `json:"order_id"`
	From      string    `json:"from"`
	Status    string    `json:"status"`
	CourierID *int64    `json:"courier_id,omitempty"`
	ChangedBy int64     `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// LocationPayload is the data of a LOCATION_UPDATE event.
type LocationPayload struct {
	OrderID    int64     `json:"order_id"`
	CourierID  int64     `json:"courier_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

var (
	// ErrSubscriberFull is returned by a subscriber whose queue is full.
	ErrSubscriberFull = errors.New("subscriber queue full")
	// ErrSubscriberClosed is returned by a subscriber that went away.
	ErrSubscriberClosed = errors.New("subscriber closed")
)

// Subscriber is one connection's side of a room. Send must not block.
type Subscriber interface {
	ID() string
	Send(ev Event) error
}

// Broadcaster delivers an event to every member of a room.
type Broadcaster interface {
	Broadcast(ctx context.Context, room string, ev Event) error
}
