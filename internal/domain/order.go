package domain

import (
	"time"

	"service-courier-tracking/internal/geo"
)

// Order holds the delivery-relevant part of a customer order.
type Order struct {
	ID                 int64
	CustomerID         int64
	RestaurantID       int64
	RestaurantOwnerID  int64
	RestaurantLocation *geo.Point
	Destination        *geo.Point
	PrepTime           time.Duration
	Status             OrderStatus
	CourierID          *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AccessPrincipals lists the users allowed to see and change an order.
type AccessPrincipals struct {
	OrderID           int64
	Status            OrderStatus
	CustomerID        int64
	RestaurantOwnerID int64
	CourierID         *int64
}

// Allows reports whether userID is the customer, the restaurant owner or
// the assigned courier.
func (p AccessPrincipals) Allows(userID int64) bool {
	if userID <= 0 {
		return false
	}
	return userID == p.CustomerID || userID == p.RestaurantOwnerID || p.IsCourier(userID)
}

// IsCourier reports whether userID is the assigned courier.
func (p AccessPrincipals) IsCourier(userID int64) bool {
	return p.CourierID != nil && *p.CourierID == userID
}

// IsRestaurantOwner reports whether userID owns the order's restaurant.
func (p AccessPrincipals) IsRestaurantOwner(userID int64) bool {
	return userID > 0 && userID == p.RestaurantOwnerID
}

// StatusChange is a committed order status transition.
type StatusChange struct {
	OrderID   int64
	From      OrderStatus
	To        OrderStatus
	CourierID *int64
	ChangedBy int64
	ChangedAt time.Time
}

// Tracking is what a principal sees about an order in flight.
type Tracking struct {
	OrderID          int64
	Status           OrderStatus
	CourierID        *int64
	DeliveryStatus   DeliveryStatus
	Location         *geo.Point
	EstimatedArrival *time.Time
	UpdatedAt        time.Time
}
