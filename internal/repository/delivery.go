package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/ports/deliverytx"
)

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ReconcileAvailability recomputes every courier's active delivery count and
// availability from the deliveries table. It returns the number of fixed rows.
//
// Courier rows are locked before counting, so an assignment or release that
// holds a courier lock finishes first and its deliveries are counted.
func (r *DeliveryRepo) ReconcileAvailability(ctx context.Context, maxActive int) (fixed int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT id FROM couriers ORDER BY id FOR UPDATE`); err != nil {
		return 0, fmt.Errorf("lock couriers: %w", err)
	}

	ct, err := tx.Exec(ctx, `
        WITH counts AS (
            SELECT c.id,
                   COUNT(d.id) FILTER (WHERE d.status IN ('assigned', 'picked')) AS n
            FROM couriers c
            LEFT JOIN deliveries d ON d.courier_id = c.id
            GROUP BY c.id
        )
        UPDATE couriers c
        SET active_deliveries = counts.n,
            is_available      = c.is_online AND c.is_active AND counts.n < $1,
            updated_at        = now()
        FROM counts
        WHERE c.id = counts.id
          AND (c.active_deliveries <> counts.n
               OR c.is_available <> (c.is_online AND c.is_active AND counts.n < $1))
    `, maxActive)
	if err != nil {
		return 0, fmt.Errorf("reconcile availability: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return ct.RowsAffected(), nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ deliverytx.Repository = (*TxRepo)(nil)

// GetOrderForUpdate - get order and lock it until the transaction ends.
func (r *TxRepo) GetOrderForUpdate(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, err := scanOrder(r.tx.QueryRow(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock order %d: %w", orderID, err)
	}
	return o, nil
}

// ClaimOrder - attach courier to an unassigned, non-terminal order.
func (r *TxRepo) ClaimOrder(ctx context.Context, orderID, courierID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET courier_id = $2, updated_at = now()
        WHERE id = $1
          AND courier_id IS NULL
          AND status NOT IN ($3, $4)
    `, orderID, courierID, string(domain.OrderDelivered), string(domain.OrderCancelled))
	if err != nil {
		return false, fmt.Errorf("claim order %d for courier %d: %w", orderID, courierID, err)
	}
	return ct.RowsAffected() == 1, nil
}

// UpdateOrderStatus - move order from one status to another.
func (r *TxRepo) UpdateOrderStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `, orderID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update order %d status %s -> %s: %w", orderID, from, to, err)
	}
	return ct.RowsAffected() == 1, nil
}

// InsertDelivery - insert a new delivery.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	if d.Status == "" {
		d.Status = domain.DeliveryAssigned
	}
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (order_id, courier_id, status, assigned_at, deadline, estimated_arrival)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, d.OrderID, d.CourierID, string(d.Status), d.AssignedAt, d.Deadline, d.EstimatedArrival).Scan(&d.ID)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return fmt.Errorf("order %d already has an active delivery: %w", d.OrderID, apperr.ErrConflict)
		case IsForeignKey(err):
			return fmt.Errorf("order %d or courier %d: %w", d.OrderID, d.CourierID, apperr.ErrNotFound)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetActiveDelivery - get the assigned or picked delivery of an order.
func (r *TxRepo) GetActiveDelivery(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	d, err := scanDelivery(r.tx.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE order_id = $1 AND status IN ('assigned', 'picked')
        FOR UPDATE
    `, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("active delivery of order %d: %w", orderID, err)
	}
	return d, nil
}

// UpdateDeliveryStatus - set delivery status and stamp the matching time column.
func (r *TxRepo) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status domain.DeliveryStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status       = $2,
            picked_at    = CASE WHEN $2 = 'picked' THEN $3 ELSE picked_at END,
            completed_at = CASE WHEN $2 IN ('completed', 'cancelled') THEN $3 ELSE completed_at END
        WHERE id = $1
    `, deliveryID, string(status), at)
	if err != nil {
		return fmt.Errorf("update delivery %d status: %w", deliveryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d: %w", deliveryID, apperr.ErrNotFound)
	}
	return nil
}

// UpdateDeliveryLocation - store the courier position on the delivery.
func (r *TxRepo) UpdateDeliveryLocation(ctx context.Context, deliveryID int64, p geo.Point) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries SET current_lat = $2, current_lng = $3 WHERE id = $1
    `, deliveryID, p.Lat, p.Lng)
	if err != nil {
		return fmt.Errorf("update delivery %d location: %w", deliveryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d: %w", deliveryID, apperr.ErrNotFound)
	}
	return nil
}

// LockCourier - get courier and lock it until the transaction ends.
func (r *TxRepo) LockCourier(ctx context.Context, courierID int64) (*domain.Courier, error) {
	c, err := scanCourier(r.tx.QueryRow(ctx, `SELECT `+courierColumns+` FROM couriers WHERE id = $1 FOR UPDATE`, courierID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock courier %d: %w", courierID, err)
	}
	return c, nil
}

// CountActiveDeliveries - count assigned and picked deliveries of a courier.
func (r *TxRepo) CountActiveDeliveries(ctx context.Context, courierID int64) (int, error) {
	var n int
	err := r.tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM deliveries
        WHERE courier_id = $1 AND status IN ('assigned', 'picked')
    `, courierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active deliveries of courier %d: %w", courierID, err)
	}
	return n, nil
}

// SetActiveDeliveries - store a recounted load.
func (r *TxRepo) SetActiveDeliveries(ctx context.Context, courierID int64, n int) error {
	return r.execCourier(ctx, courierID, "set active deliveries", `
        UPDATE couriers SET active_deliveries = $2, updated_at = now() WHERE id = $1
    `, courierID, n)
}

// SetAvailability - set courier availability flag.
func (r *TxRepo) SetAvailability(ctx context.Context, courierID int64, available bool) error {
	return r.execCourier(ctx, courierID, "set availability", `
        UPDATE couriers SET is_available = $2, updated_at = now() WHERE id = $1
    `, courierID, available)
}

// UpdateCourierLocation - overwrite the courier's current position.
func (r *TxRepo) UpdateCourierLocation(ctx context.Context, courierID int64, p geo.Point, at time.Time) error {
	return r.execCourier(ctx, courierID, "update location", `
        UPDATE couriers
        SET lat = $2, lng = $3, location_updated_at = $4, updated_at = now()
        WHERE id = $1
    `, courierID, p.Lat, p.Lng, at)
}

// AppendLocationHistory - append an immutable position record.
func (r *TxRepo) AppendLocationHistory(ctx context.Context, e *domain.LocationHistoryEntry) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO location_history (courier_id, order_id, lat, lng, recorded_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, e.CourierID, e.OrderID, e.Point.Lat, e.Point.Lng, e.RecordedAt).Scan(&e.ID)
	if err != nil {
		if IsForeignKey(err) {
			return fmt.Errorf("courier %d: %w", e.CourierID, apperr.ErrNotFound)
		}
		return fmt.Errorf("append location history: %w", err)
	}
	return nil
}

func (r *TxRepo) execCourier(ctx context.Context, courierID int64, op, q string, args ...any) error {
	ct, err := r.tx.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s for courier %d: %w", op, courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
	}
	return nil
}
