package repository

import (
	"context"
	"fmt"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier by its ID, nil if absent.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx, `SELECT `+courierColumns+` FROM couriers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	return c, nil
}

// List returns couriers ordered by id. If limit/offset are nil, returns the full list.
func (r *CourierRepo) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	q := `SELECT ` + courierColumns + ` FROM couriers ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	return r.query(ctx, capacity, q, args...)
}

// ListAvailable returns the candidate pool: available, active couriers
// with a known location.
func (r *CourierRepo) ListAvailable(ctx context.Context) ([]domain.Courier, error) {
	return r.query(ctx, 0, `
        SELECT `+courierColumns+`
        FROM couriers
        WHERE is_available AND is_active AND lat IS NOT NULL AND lng IS NOT NULL
        ORDER BY id
    `)
}

func (r *CourierRepo) query(ctx context.Context, capacity int, q string, args ...any) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query couriers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Courier, 0, capacity)
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan courier: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create registers a courier under its user id. New couriers start offline.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) error {
	created, err := scanCourier(r.db.QueryRow(ctx, `
        INSERT INTO couriers (id, name, phone, transport_type, rating)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+courierColumns,
		c.ID, c.Name, c.Phone, c.TransportType, c.Rating))
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create courier: %w", err)
	}
	*c = *created
	return nil
}

// UpdatePartial applies a partial update to a courier and returns true if a row was affected.
func (r *CourierRepo) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET
            name           = COALESCE($2, name),
            phone          = COALESCE($3, phone),
            transport_type = COALESCE($4, transport_type),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.TransportType)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update courier %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetOnline flips the courier's own online flag and recomputes availability.
// It returns nil when the courier does not exist.
func (r *CourierRepo) SetOnline(ctx context.Context, id int64, online bool, maxActive int) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx, `
        UPDATE couriers
        SET is_online    = $2,
            is_available = $2 AND is_active AND active_deliveries < $3,
            updated_at   = now()
        WHERE id = $1
        RETURNING `+courierColumns, id, online, maxActive))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("set courier %d online=%t: %w", id, online, err)
	}
	return c, nil
}

// Deactivate soft-deletes a courier; it stays in history but is never a candidate again.
func (r *CourierRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET is_active = false, is_online = false, is_available = false, updated_at = now()
        WHERE id = $1
    `, id)
	if err != nil {
		return false, fmt.Errorf("deactivate courier %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
