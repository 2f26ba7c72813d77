// Package location ingests courier positions.
package location

import (
	"context"
	"fmt"
	"time"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/ports/deliverytx"
	"service-courier-tracking/internal/realtime"
)

// Service writes courier locations and pushes them to order rooms.
type Service struct {
	store   txRunner
	rooms   broadcaster
	timeout time.Duration
	logger  logx.Logger
	now     func() time.Time
}

// NewService creates a Service.
func NewService(store txRunner, rooms broadcaster, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		store:   store,
		rooms:   rooms,
		timeout: timeout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func validate(courierID int64, p geo.Point) error {
	if courierID <= 0 {
		return fmt.Errorf("%w: courier id must be positive", apperr.ErrInvalid)
	}
	if !p.Valid() {
		return fmt.Errorf("%w: coordinates out of range: lat=%v lng=%v", apperr.ErrInvalid, p.Lat, p.Lng)
	}
	return nil
}

// UpdateCourierLocation records a plain courier ping.
func (s *Service) UpdateCourierLocation(ctx context.Context, courierID int64, p geo.Point) error {
	if err := validate(courierID, p); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	at := s.now()
	err := s.store.WithTx(ctx, func(tx deliverytx.Repository) error {
		if err := tx.UpdateCourierLocation(ctx, courierID, p, at); err != nil {
			return err
		}
		return tx.AppendLocationHistory(ctx, &domain.LocationHistoryEntry{CourierID: courierID, Point: p, RecordedAt: at})
	})
	if err != nil {
		return err
	}

	s.logger.Debug("courier location ingested",
		logx.Event("location_ingested"),
		logx.Int64("courier_id", courierID),
	)
	return nil
}

// UpdateLocationForOrder records a position of the courier delivering
// orderID and pushes it to the order's room. Only the courier of the
// order's active delivery may report it.
func (s *Service) UpdateLocationForOrder(ctx context.Context, orderID, courierID int64, p geo.Point) error {
	if orderID <= 0 {
		return fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}
	if err := validate(courierID, p); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	at := s.now()
	err := s.store.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetActiveDelivery(ctx, orderID)
		if err != nil {
			return err
		}
		if d == nil || d.CourierID != courierID {
			return fmt.Errorf("courier %d on order %d: %w", courierID, orderID, apperr.ErrNotAssignedToOrder)
		}

		if err := tx.UpdateCourierLocation(ctx, courierID, p, at); err != nil {
			return err
		}
		if err := tx.UpdateDeliveryLocation(ctx, d.ID, p); err != nil {
			return err
		}
		return tx.AppendLocationHistory(ctx, &domain.LocationHistoryEntry{
			CourierID:  courierID,
			OrderID:    &orderID,
			Point:      p,
			RecordedAt: at,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Debug("order location ingested",
		logx.Event("location_ingested"),
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", courierID),
	)
	s.broadcast(ctx, orderID, realtime.LocationPayload{
		OrderID:    orderID,
		CourierID:  courierID,
		Lat:        p.Lat,
		Lng:        p.Lng,
		RecordedAt: at,
	}, at)
	return nil
}

func (s *Service) broadcast(ctx context.Context, orderID int64, payload realtime.LocationPayload, at time.Time) {
	ev, err := realtime.NewEvent(realtime.EventLocationUpdate, orderID, payload, at)
	if err == nil {
		err = s.rooms.Broadcast(ctx, ev.Room, ev)
	}
	if err != nil {
		s.logger.Warn("location broadcast failed",
			logx.Event("location_broadcast_failed"),
			logx.Int64("order_id", orderID),
			logx.Err(err),
		)
	}
}
