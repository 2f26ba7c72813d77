package orders

import (
	"time"

	"service-courier-tracking/internal/geo"
)

// Event is a single order event. The order fields are set on creation
// events only.
type Event struct {
	OrderID           int64
	Status            string
	CustomerID        int64
	RestaurantID      int64
	RestaurantOwnerID int64
	Restaurant        *geo.Point
	Destination       *geo.Point
	PrepTime          time.Duration
	CreatedAt         time.Time
}
