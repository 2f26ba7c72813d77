//go:generate mockgen -source=contracts.go -destination=tracking_mocks_test.go -package=tracking_test

package tracking

import (
	"context"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/ports/deliverytx"
	"service-courier-tracking/internal/realtime"
)

type orderAccess interface {
	Principals(ctx context.Context, orderID int64) (*domain.AccessPrincipals, error)
	Tracking(ctx context.Context, orderID int64) (*domain.Tracking, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

type roomRegistry interface {
	Join(room string, s realtime.Subscriber)
	Leave(room, subscriberID string)
}

type broadcaster interface {
	Broadcast(ctx context.Context, room string, ev realtime.Event) error
}

type statusPublisher interface {
	PublishStatus(ctx context.Context, change domain.StatusChange) error
}

type orderDispatcher interface {
	Dispatch(ctx context.Context, orderID int64) (domain.Assignment, bool, error)
}
