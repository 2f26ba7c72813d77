package ws

import (
	"errors"

	"service-courier-tracking/internal/apperr"
)

// Client message types.
const (
	msgAuth     = "auth"
	msgJoin     = "join"
	msgLeave    = "leave"
	msgLocation = "location"
	msgStatus   = "status"
)

type inbound struct {
	Type    string   `json:"type"`
	Token   string   `json:"token,omitempty"`
	OrderID int64    `json:"order_id,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Status  string   `json:"status,omitempty"`
}

type ackFrame struct {
	Type    string `json:"type"`
	Request string `json:"request"`
	OrderID int64  `json:"order_id,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Request string `json:"request,omitempty"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

type authenticatedFrame struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
}

func newAck(request string, orderID int64) ackFrame {
	return ackFrame{Type: "ack", Request: request, OrderID: orderID}
}

func newError(request string, err error) errorFrame {
	code, msg := classify(err)
	return errorFrame{Type: "error", Request: request, Code: code, Error: msg}
}

func classify(err error) (code, msg string) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return "invalid", "invalid request"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found", "not found"
	case errors.Is(err, apperr.ErrUnauthorized):
		return "unauthorized", "not allowed for this order"
	case errors.Is(err, apperr.ErrNotAssignedToOrder):
		return "not_assigned", "courier is not assigned to this order"
	case errors.Is(err, apperr.ErrInvalidTransition):
		return "invalid_transition", "status transition not allowed"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict", "conflict"
	default:
		return "internal", "internal error"
	}
}
