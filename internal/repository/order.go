package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-courier-tracking/internal/domain"
)

// OrderRepo reads and upserts orders mirrored from the orders service.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Get returns the order with its restaurant location, nil if absent.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// Principals returns who may access the order, nil if the order is absent.
func (r *OrderRepo) Principals(ctx context.Context, orderID int64) (*domain.AccessPrincipals, error) {
	var p domain.AccessPrincipals
	err := r.db.QueryRow(ctx, `
        SELECT o.id, o.status, o.customer_id, r.owner_id, o.courier_id
        FROM orders o
        JOIN restaurants r ON r.id = o.restaurant_id
        WHERE o.id = $1
    `, orderID).Scan(&p.OrderID, &p.Status, &p.CustomerID, &p.RestaurantOwnerID, &p.CourierID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("order %d principals: %w", orderID, err)
	}
	return &p, nil
}

// Upsert stores the restaurant and the order. Status and courier of an
// existing order are left alone; they are owned by the status machine.
func (r *OrderRepo) Upsert(ctx context.Context, o domain.Order) error {
	if o.RestaurantLocation == nil {
		return fmt.Errorf("upsert order %d: restaurant location is required", o.ID)
	}
	status := o.Status
	if status == "" {
		status = domain.OrderPending
	}
	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	dLat, dLng := coords(o.Destination)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            INSERT INTO restaurants (id, owner_id, lat, lng)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (id) DO UPDATE
            SET owner_id = EXCLUDED.owner_id, lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = now()
        `, o.RestaurantID, o.RestaurantOwnerID, o.RestaurantLocation.Lat, o.RestaurantLocation.Lng); err != nil {
			return fmt.Errorf("upsert restaurant %d: %w", o.RestaurantID, err)
		}

		if _, err := tx.Exec(ctx, `
            INSERT INTO orders (id, customer_id, restaurant_id, dest_lat, dest_lng, prep_minutes, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            ON CONFLICT (id) DO UPDATE
            SET customer_id   = EXCLUDED.customer_id,
                restaurant_id = EXCLUDED.restaurant_id,
                dest_lat      = EXCLUDED.dest_lat,
                dest_lng      = EXCLUDED.dest_lng,
                prep_minutes  = EXCLUDED.prep_minutes,
                updated_at    = now()
        `, o.ID, o.CustomerID, o.RestaurantID, dLat, dLng, int(o.PrepTime/time.Minute), string(status), createdAt); err != nil {
			return fmt.Errorf("upsert order %d: %w", o.ID, err)
		}
		return nil
	})
}

// Tracking returns the order status with the latest delivery position, nil if absent.
func (r *OrderRepo) Tracking(ctx context.Context, orderID int64) (*domain.Tracking, error) {
	var (
		t        domain.Tracking
		dStatus  *string
		lat, lng *float64
	)
	err := r.db.QueryRow(ctx, `
        SELECT o.id, o.status, o.courier_id, o.updated_at,
               d.status, d.current_lat, d.current_lng, d.estimated_arrival
        FROM orders o
        LEFT JOIN LATERAL (
            SELECT status, current_lat, current_lng, estimated_arrival
            FROM deliveries
            WHERE order_id = o.id
            ORDER BY id DESC
            LIMIT 1
        ) d ON true
        WHERE o.id = $1
    `, orderID).Scan(&t.OrderID, &t.Status, &t.CourierID, &t.UpdatedAt, &dStatus, &lat, &lng, &t.EstimatedArrival)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("track order %d: %w", orderID, err)
	}
	if dStatus != nil {
		t.DeliveryStatus = domain.DeliveryStatus(*dStatus)
	}
	t.Location = pointOf(lat, lng)
	return &t, nil
}
