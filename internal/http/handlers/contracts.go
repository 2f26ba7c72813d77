package handlers

import (
	"context"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/service/scoring"
)

type courierUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) error
	UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) error
	SetOnline(ctx context.Context, id int64, online bool) (*domain.Courier, error)
	Deactivate(ctx context.Context, id int64) error
}

type dispatchUsecase interface {
	Dispatch(ctx context.Context, orderID int64) (domain.Assignment, bool, error)
	Candidates(ctx context.Context, orderID int64) ([]scoring.Candidate, error)
}

type trackingUsecase interface {
	Authorize(ctx context.Context, userID, orderID int64) error
	Track(ctx context.Context, userID, orderID int64) (domain.Tracking, error)
	UpdateStatus(ctx context.Context, userID, orderID int64, status domain.OrderStatus) (domain.StatusChange, error)
}

type locationUsecase interface {
	UpdateCourierLocation(ctx context.Context, courierID int64, p geo.Point) error
	UpdateLocationForOrder(ctx context.Context, orderID, courierID int64, p geo.Point) error
}
