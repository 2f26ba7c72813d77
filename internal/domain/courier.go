package domain

import (
	"time"

	"service-courier-tracking/internal/geo"
)

// TransportType is a courier's vehicle.
type TransportType string

// Courier is a delivery agent. ID is the courier's user id.
type Courier struct {
	ID            int64
	Name          string
	Phone         string
	TransportType TransportType
	Rating        float64

	// Location is nil until the first ping.
	Location          *geo.Point
	LocationUpdatedAt time.Time

	// Online is controlled by the courier; Available is derived from
	// Online, Active and the active delivery count.
	Online           bool
	Available        bool
	Active           bool
	ActiveDeliveries int

	CreatedAt time.Time
}

// PartialCourierUpdate carries optional fields to update a courier.
// A nil field means “do not change” that attribute.
type PartialCourierUpdate struct {
	ID            int64
	Name          *string
	Phone         *string
	TransportType *TransportType
}

// Load is the courier's bookkeeping after a recount.
type Load struct {
	CourierID        int64
	ActiveDeliveries int
	Available        bool
}
