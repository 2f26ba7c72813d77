package domain

import "regexp"

// List of possible courier transport types
const (
	TransportTypeFoot    TransportType = "foot"
	TransportTypeBicycle TransportType = "bicycle"
	TransportTypeScooter TransportType = "scooter"
	TransportTypeCar     TransportType = "car"
)

var allowedTransportTypes = [...]TransportType{
	TransportTypeFoot, TransportTypeBicycle, TransportTypeScooter, TransportTypeCar,
}

// Valid checks if the TransportType is known.
func (t TransportType) Valid() bool {
	for _, v := range allowedTransportTypes {
		if t == v {
			return true
		}
	}
	return false
}

var rePhone = regexp.MustCompile(`^\+[0-9]{11}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// OrderStatus is the order lifecycle state.
type OrderStatus string

// Order statuses in their forward order; CANCELLED is reachable from any
// non-terminal state.
const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderPickedUp       OrderStatus = "PICKED_UP"
	OrderInTransit      OrderStatus = "IN_TRANSIT"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderFlow = [...]OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReadyForPickup,
	OrderPickedUp, OrderInTransit, OrderDelivered,
}

func (s OrderStatus) position() int {
	for i, v := range orderFlow {
		if s == v {
			return i
		}
	}
	return -1
}

// Valid checks if the OrderStatus is known.
func (s OrderStatus) Valid() bool {
	return s == OrderCancelled || s.position() >= 0
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether from -> to is allowed. In strict mode only
// the next forward step or a cancellation is allowed; otherwise any move
// between distinct known states out of a non-terminal state is.
func CanTransition(from, to OrderStatus, strict bool) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() || from == to {
		return false
	}
	if to == OrderCancelled || !strict {
		return true
	}
	return to.position() == from.position()+1
}

// DeliveryStatus is the state of a Delivery.
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPicked    DeliveryStatus = "picked"
	DeliveryCompleted DeliveryStatus = "completed"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Active reports whether the delivery counts against the courier's load.
func (s DeliveryStatus) Active() bool {
	return s == DeliveryAssigned || s == DeliveryPicked
}

// DeliveryStatusFor maps an order status to the delivery status it implies.
// ok is false when the order status does not touch the delivery.
func DeliveryStatusFor(s OrderStatus) (DeliveryStatus, bool) {
	switch s {
	case OrderPickedUp:
		return DeliveryPicked, true
	case OrderDelivered:
		return DeliveryCompleted, true
	case OrderCancelled:
		return DeliveryCancelled, true
	default:
		return "", false
	}
}
