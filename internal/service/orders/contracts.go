//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-courier-tracking/internal/domain"
)

// OrderStore keeps the local copy of orders.
type OrderStore interface {
	Upsert(ctx context.Context, o domain.Order) error
}

// StatusPort applies status changes reported by the orders service.
type StatusPort interface {
	ApplyExternalStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.StatusChange, error)
}
