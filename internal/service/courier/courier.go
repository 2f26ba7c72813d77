package courier

import (
	"context"
	"strings"
	"time"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
)

const newCourierRating = 5.0

// Service coordinates courier onboarding and the courier's own presence.
type Service struct {
	repo             courierRepository
	maxActive        int
	operationTimeout time.Duration
}

// NewService creates and configures a courier Service. maxActive is the
// per-courier cap used when availability is recomputed.
func NewService(r courierRepository, maxActive int, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if maxActive <= 0 {
		maxActive = 1
	}
	return &Service{repo: r, maxActive: maxActive, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a courier for creation.
func validateCreate(c *domain.Courier) error {
	if c == nil || c.ID <= 0 {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(c.Phone) {
		return apperr.ErrInvalid
	}
	if c.TransportType == "" {
		c.TransportType = domain.TransportTypeFoot
	}
	if !c.TransportType.Valid() {
		return apperr.ErrInvalid
	}
	if c.Rating == 0 {
		c.Rating = newCourierRating
	}
	if c.Rating < 0 || c.Rating > 5 {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialCourierUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Phone == nil && u.TransportType == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.TransportType != nil && !u.TransportType.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

// List returns couriers with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create registers c under its user id. A duplicate id is ErrConflict.
func (s *Service) Create(ctx context.Context, c *domain.Courier) error {
	if err := validateCreate(c); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, c)
}

// UpdatePartial applies a partial update to a courier.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) error {
	if err := validateUpdate(&u); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// SetOnline sets the courier's online flag; availability follows from it,
// the active flag and the current load.
func (s *Service) SetOnline(ctx context.Context, id int64, online bool) (*domain.Courier, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	c, err := s.repo.SetOnline(ctx, id, online, s.maxActive)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

// Deactivate takes the courier out of the pool for good.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
