package courier

import (
	"context"

	"service-courier-tracking/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) error
	UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error)
	SetOnline(ctx context.Context, id int64, online bool, maxActive int) (*domain.Courier, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}
