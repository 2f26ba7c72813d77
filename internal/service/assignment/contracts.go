//go:generate mockgen -source=contracts.go -destination=assignment_mocks_test.go -package=assignment_test

package assignment

import (
	"context"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/ports/deliverytx"
	"service-courier-tracking/internal/service/scoring"
)

type deliveryStore interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	ReconcileAvailability(ctx context.Context, maxActive int) (int64, error)
}

type orderReader interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
}

type courierPool interface {
	ListAvailable(ctx context.Context) ([]domain.Courier, error)
}

type courierRanker interface {
	Rank(order domain.Order, pool []domain.Courier) ([]scoring.Candidate, error)
}

type courierAssigner interface {
	AssignCourier(ctx context.Context, orderID, courierID int64) (domain.Assignment, error)
}
