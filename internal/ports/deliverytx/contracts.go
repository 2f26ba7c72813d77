package deliverytx

import (
	"context"
	"time"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
)

// Repository is the store as seen from inside one transaction.
type Repository interface {
	// GetOrderForUpdate locks the order row; nil when absent.
	GetOrderForUpdate(ctx context.Context, orderID int64) (*domain.Order, error)
	// ClaimOrder sets the order's courier if it has none and is not terminal.
	ClaimOrder(ctx context.Context, orderID, courierID int64) (bool, error)
	// UpdateOrderStatus is a compare-and-set on the current status.
	UpdateOrderStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) (bool, error)

	// InsertDelivery returns apperr.ErrConflict when the order already has an
	// active delivery and apperr.ErrNotFound for an unknown order or courier.
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetActiveDelivery(ctx context.Context, orderID int64) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status domain.DeliveryStatus, at time.Time) error
	UpdateDeliveryLocation(ctx context.Context, deliveryID int64, p geo.Point) error

	// LockCourier locks the courier row; nil when absent.
	LockCourier(ctx context.Context, courierID int64) (*domain.Courier, error)
	CountActiveDeliveries(ctx context.Context, courierID int64) (int, error)
	SetActiveDeliveries(ctx context.Context, courierID int64, n int) error
	SetAvailability(ctx context.Context, courierID int64, available bool) error
	UpdateCourierLocation(ctx context.Context, courierID int64, p geo.Point, at time.Time) error
	AppendLocationHistory(ctx context.Context, e *domain.LocationHistoryEntry) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
