package ws

import (
	"context"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/realtime"
)

type verifier interface {
	Verify(token string) (int64, error)
}

type roomService interface {
	JoinRoom(ctx context.Context, userID, orderID int64, sub realtime.Subscriber) error
	LeaveRoom(orderID int64, subscriberID string)
	UpdateStatus(ctx context.Context, userID, orderID int64, status domain.OrderStatus) (domain.StatusChange, error)
}

type locationService interface {
	UpdateCourierLocation(ctx context.Context, courierID int64, p geo.Point) error
	UpdateLocationForOrder(ctx context.Context, orderID, courierID int64, p geo.Point) error
}

type disconnecter interface {
	Disconnect(subscriberID string) int
}

type connGauge interface {
	Inc()
	Dec()
}
