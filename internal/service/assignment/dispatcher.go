package assignment

import (
	"context"
	"errors"
	"fmt"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/service/scoring"
)

// Dispatcher picks the best courier for an order and assigns it.
type Dispatcher struct {
	orders   orderReader
	pool     courierPool
	ranker   courierRanker
	assigner courierAssigner
	logger   logx.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(orders orderReader, pool courierPool, ranker courierRanker, assigner courierAssigner, logger logx.Logger) *Dispatcher {
	return &Dispatcher{orders: orders, pool: pool, ranker: ranker, assigner: assigner, logger: logger}
}

// Candidates returns the ranked candidate list of an order without
// assigning anyone.
func (d *Dispatcher) Candidates(ctx context.Context, orderID int64) ([]scoring.Candidate, error) {
	order, err := d.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return d.rank(ctx, *order)
}

// Dispatch assigns the top ranked courier. found is false when no courier
// is eligible; that is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, orderID int64) (domain.Assignment, bool, error) {
	order, err := d.loadOrder(ctx, orderID)
	if err != nil {
		return domain.Assignment{}, false, err
	}
	if order.CourierID != nil {
		return domain.Assignment{}, false, fmt.Errorf("order %d already has courier %d: %w", orderID, *order.CourierID, apperr.ErrConflict)
	}
	if order.Status.Terminal() {
		return domain.Assignment{}, false, fmt.Errorf("order %d is %s: %w", orderID, order.Status, apperr.ErrConflict)
	}

	ranked, err := d.rank(ctx, *order)
	if err != nil {
		return domain.Assignment{}, false, err
	}
	if len(ranked) == 0 {
		d.logger.Info("no eligible courier",
			logx.Event("no_eligible_courier"),
			logx.Int64("order_id", orderID),
		)
		return domain.Assignment{}, false, nil
	}

	best := ranked[0]
	res, err := d.assigner.AssignCourier(ctx, orderID, best.CourierID)
	if err != nil {
		if errors.Is(err, apperr.ErrPostAssignmentUpdate) {
			return res, true, err
		}
		return domain.Assignment{}, false, err
	}
	return res, true, nil
}

func (d *Dispatcher) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}
	order, err := d.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
	}
	return order, nil
}

func (d *Dispatcher) rank(ctx context.Context, order domain.Order) ([]scoring.Candidate, error) {
	pool, err := d.pool.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available couriers: %w", err)
	}
	return d.ranker.Rank(order, pool)
}
