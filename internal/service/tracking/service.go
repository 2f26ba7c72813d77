// Package tracking guards order rooms and drives the order status machine.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/ports/deliverytx"
	"service-courier-tracking/internal/realtime"
	"service-courier-tracking/internal/service/assignment"
)

// Config stores tracking settings.
type Config struct {
	StrictTransitions   bool
	MaxActiveDeliveries int
	OperationTimeout    time.Duration
}

// Deps are the collaborators of Service. Publisher and Dispatcher may be nil.
type Deps struct {
	Orders      orderAccess
	Store       txRunner
	Rooms       roomRegistry
	Broadcaster broadcaster
	Publisher   statusPublisher
	Dispatcher  orderDispatcher
}

// Service authorizes room access and applies status transitions.
type Service struct {
	Deps
	cfg    Config
	logger logx.Logger
	now    func() time.Time
}

// NewService creates a Service.
func NewService(deps Deps, cfg Config, logger logx.Logger) *Service {
	if cfg.MaxActiveDeliveries <= 0 {
		cfg.MaxActiveDeliveries = 3
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	return &Service{
		Deps:   deps,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) principals(ctx context.Context, userID, orderID int64) (*domain.AccessPrincipals, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}
	p, err := s.Orders.Principals(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
	}
	if !p.Allows(userID) {
		return nil, fmt.Errorf("user %d on order %d: %w", userID, orderID, apperr.ErrUnauthorized)
	}
	return p, nil
}

// Authorize checks that userID is the customer, the restaurant owner or
// the assigned courier of the order. Principals are read on every call.
func (s *Service) Authorize(ctx context.Context, userID, orderID int64) error {
	_, err := s.principals(ctx, userID, orderID)
	return err
}

// JoinRoom subscribes sub to the order's room after authorizing userID.
func (s *Service) JoinRoom(ctx context.Context, userID, orderID int64, sub realtime.Subscriber) error {
	if err := s.Authorize(ctx, userID, orderID); err != nil {
		return err
	}
	s.Rooms.Join(realtime.OrderRoom(orderID), sub)
	s.logger.Info("room joined",
		logx.Event("room_joined"),
		logx.Int64("order_id", orderID),
		logx.Int64("user_id", userID),
		logx.String("subscriber_id", sub.ID()),
	)
	return nil
}

// LeaveRoom removes a subscriber from the order's room.
func (s *Service) LeaveRoom(orderID int64, subscriberID string) {
	s.Rooms.Leave(realtime.OrderRoom(orderID), subscriberID)
}

// Track returns what an authorized principal may see about an order.
func (s *Service) Track(ctx context.Context, userID, orderID int64) (domain.Tracking, error) {
	if _, err := s.principals(ctx, userID, orderID); err != nil {
		return domain.Tracking{}, err
	}
	t, err := s.Orders.Tracking(ctx, orderID)
	if err != nil {
		return domain.Tracking{}, err
	}
	if t == nil {
		return domain.Tracking{}, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
	}
	return *t, nil
}

// UpdateStatus moves an order to status on behalf of userID.
func (s *Service) UpdateStatus(ctx context.Context, userID, orderID int64, status domain.OrderStatus) (domain.StatusChange, error) {
	if !status.Valid() {
		return domain.StatusChange{}, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, status)
	}
	if _, err := s.principals(ctx, userID, orderID); err != nil {
		return domain.StatusChange{}, err
	}
	return s.apply(ctx, orderID, status, userID)
}

// ApplyExternalStatus moves an order to status on behalf of the orders
// service; no principal is checked.
func (s *Service) ApplyExternalStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.StatusChange, error) {
	if orderID <= 0 {
		return domain.StatusChange{}, fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}
	if !status.Valid() {
		return domain.StatusChange{}, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, status)
	}
	return s.apply(ctx, orderID, status, 0)
}

func (s *Service) apply(ctx context.Context, orderID int64, to domain.OrderStatus, changedBy int64) (domain.StatusChange, error) {
	change, err := s.commit(ctx, orderID, to, changedBy)
	if err != nil {
		return domain.StatusChange{}, err
	}

	s.logger.Info("order status changed",
		logx.Event("status_changed"),
		logx.Int64("order_id", orderID),
		logx.String("from", string(change.From)),
		logx.String("to", string(change.To)),
		logx.Int64("changed_by", changedBy),
	)

	s.broadcast(ctx, change)
	s.publish(ctx, change)
	if to == domain.OrderConfirmed && change.CourierID == nil {
		s.dispatch(ctx, orderID)
	}
	return change, nil
}

func (s *Service) commit(ctx context.Context, orderID int64, to domain.OrderStatus, changedBy int64) (domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	var change domain.StatusChange
	err := s.Store.WithTx(ctx, func(tx deliverytx.Repository) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		from := order.Status
		if !domain.CanTransition(from, to, s.cfg.StrictTransitions) {
			return fmt.Errorf("order %d %s -> %s: %w", orderID, from, to, apperr.ErrInvalidTransition)
		}

		ok, err := tx.UpdateOrderStatus(ctx, orderID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("order %d changed concurrently: %w", orderID, apperr.ErrConflict)
		}

		now := s.now()
		if err := s.applyDeliverySideEffects(ctx, tx, orderID, to, now); err != nil {
			return err
		}

		change = domain.StatusChange{
			OrderID:   orderID,
			From:      from,
			To:        to,
			CourierID: order.CourierID,
			ChangedBy: changedBy,
			ChangedAt: now,
		}
		return nil
	})
	return change, err
}

func (s *Service) applyDeliverySideEffects(ctx context.Context, tx deliverytx.Repository, orderID int64, to domain.OrderStatus, at time.Time) error {
	next, ok := domain.DeliveryStatusFor(to)
	if !ok {
		return nil
	}
	d, err := tx.GetActiveDelivery(ctx, orderID)
	if err != nil {
		return err
	}
	if d == nil {
		return nil
	}
	if err := tx.UpdateDeliveryStatus(ctx, d.ID, next, at); err != nil {
		return err
	}
	if next.Active() {
		return nil
	}

	load, err := assignment.ReleaseLoad(ctx, tx, d.CourierID, s.cfg.MaxActiveDeliveries)
	if err != nil {
		return err
	}
	s.logger.Info("courier released",
		logx.Event("courier_released"),
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", d.CourierID),
		logx.Int("active_deliveries", load.ActiveDeliveries),
		logx.Bool("courier_available", load.Available),
	)
	return nil
}

func (s *Service) broadcast(ctx context.Context, change domain.StatusChange) {
	ev, err := realtime.NewEvent(realtime.EventStatusUpdate, change.OrderID, realtime.StatusPayload{
		OrderID:   change.OrderID,
		From:      string(change.From),
		Status:    string(change.To),
		CourierID: change.CourierID,
		ChangedBy: change.ChangedBy,
		ChangedAt: change.ChangedAt,
	}, change.ChangedAt)
	if err == nil {
		err = s.Broadcaster.Broadcast(ctx, ev.Room, ev)
	}
	if err != nil {
		s.logger.Warn("status broadcast failed",
			logx.Event("status_broadcast_failed"),
			logx.Int64("order_id", change.OrderID),
			logx.Err(err),
		)
	}
}

func (s *Service) publish(ctx context.Context, change domain.StatusChange) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishStatus(ctx, change); err != nil {
		s.logger.Warn("status event not published",
			logx.Event("status_publish_failed"),
			logx.Int64("order_id", change.OrderID),
			logx.Err(err),
		)
	}
}

func (s *Service) dispatch(ctx context.Context, orderID int64) {
	if s.Dispatcher == nil {
		return
	}
	res, found, err := s.Dispatcher.Dispatch(ctx, orderID)
	switch {
	case err != nil && !errors.Is(err, apperr.ErrPostAssignmentUpdate):
		s.logger.Warn("dispatch after confirmation failed",
			logx.Event("dispatch_failed"),
			logx.Int64("order_id", orderID),
			logx.Err(err),
		)
	case !found:
		s.logger.Info("order left unassigned",
			logx.Event("no_eligible_courier"),
			logx.Int64("order_id", orderID),
		)
	default:
		s.logger.Info("order dispatched",
			logx.Event("order_dispatched"),
			logx.Int64("order_id", orderID),
			logx.Int64("courier_id", res.CourierID),
		)
	}
}
