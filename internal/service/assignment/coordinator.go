// Package assignment commits couriers to orders and keeps courier load in
// step with the deliveries table.
package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/ports/deliverytx"
)

// Result labels of the assignments counter.
const (
	resultAssigned         = "assigned"
	resultFailed           = "failed"
	resultPostUpdateFailed = "post_update_failed"
)

type resultCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Config stores coordinator settings.
type Config struct {
	MaxActiveDeliveries int
	OnTimeTarget        time.Duration
	OperationTimeout    time.Duration
}

// Coordinator persists assignments.
type Coordinator struct {
	store     deliveryStore
	estimator *Estimator
	cfg       Config
	results   resultCounter
	logger    logx.Logger
	now       func() time.Time
}

// NewCoordinator creates a Coordinator. results may be nil.
func NewCoordinator(store deliveryStore, est *Estimator, cfg Config, results resultCounter, logger logx.Logger) *Coordinator {
	if cfg.MaxActiveDeliveries <= 0 {
		cfg.MaxActiveDeliveries = 3
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	if est == nil {
		est = NewEstimator(nil)
	}
	if vec, ok := results.(*prometheus.CounterVec); ok && vec == nil {
		results = nil
	}
	return &Coordinator{
		store:     store,
		estimator: est,
		cfg:       cfg,
		results:   results,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.OperationTimeout)
}

func (c *Coordinator) count(result string) {
	if c.results != nil {
		c.results.WithLabelValues(result).Inc()
	}
}

// AssignCourier inserts the delivery and claims the order in one
// transaction, then recounts the courier's load in a second one.
//
// A failure of the first step wraps apperr.ErrAssignmentFailed and nothing
// is written. A failure of the second returns the valid assignment together
// with apperr.ErrPostAssignmentUpdate; reconciliation repairs the load later.
func (c *Coordinator) AssignCourier(ctx context.Context, orderID, courierID int64) (domain.Assignment, error) {
	if orderID <= 0 || courierID <= 0 {
		return domain.Assignment{}, fmt.Errorf("%w: order and courier ids must be positive", apperr.ErrInvalid)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var res domain.Assignment
	err := c.store.WithTx(ctx, func(tx deliverytx.Repository) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		if order.Status.Terminal() {
			return fmt.Errorf("order %d is %s: %w", orderID, order.Status, apperr.ErrConflict)
		}

		courier, err := tx.LockCourier(ctx, courierID)
		if err != nil {
			return err
		}
		if courier == nil {
			return fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
		}
		if !courier.Active {
			return fmt.Errorf("courier %d is deactivated: %w", courierID, apperr.ErrConflict)
		}

		now := c.now()
		d := &domain.Delivery{
			OrderID:          orderID,
			CourierID:        courierID,
			Status:           domain.DeliveryAssigned,
			AssignedAt:       now,
			Deadline:         c.deadline(*order, now),
			EstimatedArrival: c.estimator.Arrival(*courier, *order, now),
		}
		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}

		claimed, err := tx.ClaimOrder(ctx, orderID, courierID)
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("order %d already has a courier: %w", orderID, apperr.ErrConflict)
		}

		res = domain.Assignment{
			DeliveryID:       d.ID,
			OrderID:          orderID,
			CourierID:        courierID,
			AssignedAt:       d.AssignedAt,
			Deadline:         d.Deadline,
			EstimatedArrival: d.EstimatedArrival,
			OnTime:           d.EstimatedArrival != nil && !d.EstimatedArrival.After(d.Deadline),
		}
		return nil
	})
	if err != nil {
		c.count(resultFailed)
		c.logger.Warn("assignment failed",
			logx.Event("assignment_failed"),
			logx.Int64("order_id", orderID),
			logx.Int64("courier_id", courierID),
			logx.Err(err),
		)
		return domain.Assignment{}, fmt.Errorf("%w: %w", apperr.ErrAssignmentFailed, err)
	}

	load, err := c.refreshAfterAssign(ctx, courierID)
	if err != nil {
		c.count(resultPostUpdateFailed)
		c.logger.Warn("courier load not updated after assignment",
			logx.Event("post_assignment_update_failed"),
			logx.Int64("order_id", orderID),
			logx.Int64("courier_id", courierID),
			logx.Err(err),
		)
		return res, fmt.Errorf("%w: courier %d: %w", apperr.ErrPostAssignmentUpdate, courierID, err)
	}
	res.Load = load

	c.count(resultAssigned)
	c.logger.Info("courier assigned",
		logx.Event("courier_assigned"),
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", courierID),
		logx.Int("active_deliveries", load.ActiveDeliveries),
		logx.Bool("courier_available", load.Available),
		logx.Time("deadline", res.Deadline),
	)
	return res, nil
}

func (c *Coordinator) deadline(o domain.Order, now time.Time) time.Time {
	from := o.CreatedAt
	if from.IsZero() {
		from = now
	}
	return from.Add(c.cfg.OnTimeTarget)
}

func (c *Coordinator) refreshAfterAssign(ctx context.Context, courierID int64) (domain.Load, error) {
	var load domain.Load
	err := c.store.WithTx(ctx, func(tx deliverytx.Repository) error {
		courier, n, err := recount(ctx, tx, courierID)
		if err != nil {
			return err
		}

		available := courier.Available
		if n >= c.cfg.MaxActiveDeliveries && available {
			if err := tx.SetAvailability(ctx, courierID, false); err != nil {
				return err
			}
			available = false
		}
		load = domain.Load{CourierID: courierID, ActiveDeliveries: n, Available: available}
		return nil
	})
	return load, err
}

// ReleaseLoad recounts a courier after one of its deliveries ended and
// makes it available again when it is online, active and under the cap.
// It runs inside the caller's transaction.
func ReleaseLoad(ctx context.Context, tx deliverytx.Repository, courierID int64, maxActive int) (domain.Load, error) {
	courier, n, err := recount(ctx, tx, courierID)
	if err != nil {
		return domain.Load{}, err
	}

	available := courier.Online && courier.Active && n < maxActive
	if available != courier.Available {
		if err := tx.SetAvailability(ctx, courierID, available); err != nil {
			return domain.Load{}, err
		}
	}
	return domain.Load{CourierID: courierID, ActiveDeliveries: n, Available: available}, nil
}

func recount(ctx context.Context, tx deliverytx.Repository, courierID int64) (*domain.Courier, int, error) {
	courier, err := tx.LockCourier(ctx, courierID)
	if err != nil {
		return nil, 0, err
	}
	if courier == nil {
		return nil, 0, fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
	}

	n, err := tx.CountActiveDeliveries(ctx, courierID)
	if err != nil {
		return nil, 0, err
	}
	if n != courier.ActiveDeliveries {
		if err := tx.SetActiveDeliveries(ctx, courierID, n); err != nil {
			return nil, 0, err
		}
	}
	return courier, n, nil
}

// Reconcile repairs load and availability of every courier.
func (c *Coordinator) Reconcile(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fixed, err := c.store.ReconcileAvailability(ctx, c.cfg.MaxActiveDeliveries)
	if err != nil {
		return err
	}
	if fixed > 0 {
		c.logger.Info("courier availability reconciled",
			logx.Event("availability_reconciled"),
			logx.Int64("couriers", fixed),
		)
	}
	return nil
}
