// Package orders applies events from the orders service.
package orders

import (
	"context"
	"errors"
	"fmt"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/logx"
)

// Processor processes orders events.
type Processor struct {
	store   OrderStore
	status  StatusPort
	factory *actionFactory
	logger  logx.Logger
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(store OrderStore, status StatusPort, logger logx.Logger) *Processor {
	p := &Processor{store: store, status: status, logger: logger}
	p.factory = newActionFactory(p.onCreated, p.onStatus)
	return p
}

// Handle processes a single orders.Event. Unknown statuses are ignored.
// Errors wrapping apperr.ErrInvalid mean the event can never be applied.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("order event ignored",
			logx.Event("order_event_ignored"),
			logx.Int64("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	if e.RestaurantID <= 0 || e.Restaurant == nil || !e.Restaurant.Valid() {
		return fmt.Errorf("%w: order %d: restaurant id and location are required", apperr.ErrInvalid, e.OrderID)
	}
	if e.Destination != nil && !e.Destination.Valid() {
		return fmt.Errorf("%w: order %d: destination out of range", apperr.ErrInvalid, e.OrderID)
	}

	err := p.store.Upsert(ctx, domain.Order{
		ID:                 e.OrderID,
		CustomerID:         e.CustomerID,
		RestaurantID:       e.RestaurantID,
		RestaurantOwnerID:  e.RestaurantOwnerID,
		RestaurantLocation: e.Restaurant,
		Destination:        e.Destination,
		PrepTime:           e.PrepTime,
		Status:             domain.OrderPending,
		CreatedAt:          e.CreatedAt,
	})
	if err != nil {
		return err
	}
	p.logger.Info("order stored",
		logx.Event("order_upserted"),
		logx.Int64("order_id", e.OrderID),
	)
	return nil
}

func (p *Processor) onStatus(to domain.OrderStatus) actionFunc {
	return func(ctx context.Context, e Event) error {
		_, err := p.status.ApplyExternalStatus(ctx, e.OrderID, to)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperr.ErrInvalidTransition),
			errors.Is(err, apperr.ErrConflict),
			errors.Is(err, apperr.ErrNotFound):
			p.logger.Info("order event skipped",
				logx.Event("order_event_skipped"),
				logx.Int64("order_id", e.OrderID),
				logx.String("status", string(to)),
				logx.Err(err),
			)
			return nil
		default:
			return err
		}
	}
}
