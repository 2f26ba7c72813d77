// Package memstore is an in-memory store for service tests. Transactions
// are serialized and applied copy-on-write, so a failing callback leaves no
// trace.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/ports/deliverytx"
)

type state struct {
	couriers   map[int64]domain.Courier
	orders     map[int64]domain.Order
	deliveries []domain.Delivery
	history    []domain.LocationHistoryEntry
	nextID     int64
}

func (s state) clone() state {
	out := state{
		couriers:   make(map[int64]domain.Courier, len(s.couriers)),
		orders:     make(map[int64]domain.Order, len(s.orders)),
		deliveries: append([]domain.Delivery(nil), s.deliveries...),
		history:    append([]domain.LocationHistoryEntry(nil), s.history...),
		nextID:     s.nextID,
	}
	for k, v := range s.couriers {
		out.couriers[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	return out
}

// Store implements deliverytx.Runner and the read-side repositories.
type Store struct {
	mu    sync.Mutex
	st    state
	fails map[string]error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		st:    state{couriers: map[int64]domain.Courier{}, orders: map[int64]domain.Order{}},
		fails: map[string]error{},
	}
}

// PutCourier inserts or replaces a courier.
func (s *Store) PutCourier(c domain.Courier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.couriers[c.ID] = c
}

// PutOrder inserts or replaces an order.
func (s *Store) PutOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orders[o.ID] = o
}

// FailOn makes the next call of the named tx method return err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[method] = err
}

// Courier returns a snapshot of a courier.
func (s *Store) Courier(id int64) (domain.Courier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.couriers[id]
	return c, ok
}

// Order returns a snapshot of an order.
func (s *Store) Order(id int64) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	return o, ok
}

// Deliveries returns all deliveries of an order, oldest first.
func (s *Store) Deliveries(orderID int64) []domain.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Delivery
	for _, d := range s.st.deliveries {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out
}

// History returns the location history of a courier.
func (s *Store) History(courierID int64) []domain.LocationHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.LocationHistoryEntry
	for _, e := range s.st.history {
		if e.CourierID == courierID {
			out = append(out, e)
		}
	}
	return out
}

// WithTx implements deliverytx.Runner.
func (s *Store) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txView{st: s.st.clone(), fails: s.fails}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// Get returns an order, nil if absent.
func (s *Store) Get(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// Principals returns the access principals of an order, nil if absent.
func (s *Store) Principals(_ context.Context, orderID int64) (*domain.AccessPrincipals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &domain.AccessPrincipals{
		OrderID:           o.ID,
		Status:            o.Status,
		CustomerID:        o.CustomerID,
		RestaurantOwnerID: o.RestaurantOwnerID,
		CourierID:         o.CourierID,
	}, nil
}

// Tracking mirrors the SQL tracking read: the order plus its latest delivery.
func (s *Store) Tracking(_ context.Context, orderID int64) (*domain.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[orderID]
	if !ok {
		return nil, nil
	}
	t := domain.Tracking{OrderID: o.ID, Status: o.Status, CourierID: o.CourierID, UpdatedAt: o.UpdatedAt}
	for i := len(s.st.deliveries) - 1; i >= 0; i-- {
		d := s.st.deliveries[i]
		if d.OrderID != orderID {
			continue
		}
		t.DeliveryStatus = d.Status
		t.Location = d.CurrentLocation
		t.EstimatedArrival = d.EstimatedArrival
		break
	}
	return &t, nil
}

// ListAvailable returns available couriers with a location, by id.
func (s *Store) ListAvailable(_ context.Context) ([]domain.Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Courier
	for _, c := range s.st.couriers {
		if c.Available && c.Active && c.Location != nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReconcileAvailability mirrors the SQL reconciliation.
func (s *Store) ReconcileAvailability(_ context.Context, maxActive int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fixed int64
	for id, c := range s.st.couriers {
		n := activeCount(s.st.deliveries, id)
		available := c.Online && c.Active && n < maxActive
		if c.ActiveDeliveries != n || c.Available != available {
			c.ActiveDeliveries = n
			c.Available = available
			s.st.couriers[id] = c
			fixed++
		}
	}
	return fixed, nil
}

func activeCount(ds []domain.Delivery, courierID int64) int {
	n := 0
	for _, d := range ds {
		if d.CourierID == courierID && d.Status.Active() {
			n++
		}
	}
	return n
}

type txView struct {
	st    state
	fails map[string]error
}

var _ deliverytx.Repository = (*txView)(nil)

func (t *txView) fail(method string) error {
	if err, ok := t.fails[method]; ok {
		delete(t.fails, method)
		return err
	}
	return nil
}

func (t *txView) GetOrderForUpdate(_ context.Context, orderID int64) (*domain.Order, error) {
	if err := t.fail("GetOrderForUpdate"); err != nil {
		return nil, err
	}
	o, ok := t.st.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (t *txView) ClaimOrder(_ context.Context, orderID, courierID int64) (bool, error) {
	if err := t.fail("ClaimOrder"); err != nil {
		return false, err
	}
	o, ok := t.st.orders[orderID]
	if !ok || o.CourierID != nil || o.Status.Terminal() {
		return false, nil
	}
	id := courierID
	o.CourierID = &id
	t.st.orders[orderID] = o
	return true, nil
}

func (t *txView) UpdateOrderStatus(_ context.Context, orderID int64, from, to domain.OrderStatus) (bool, error) {
	if err := t.fail("UpdateOrderStatus"); err != nil {
		return false, err
	}
	o, ok := t.st.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	t.st.orders[orderID] = o
	return true, nil
}

func (t *txView) InsertDelivery(_ context.Context, d *domain.Delivery) error {
	if err := t.fail("InsertDelivery"); err != nil {
		return err
	}
	if _, ok := t.st.orders[d.OrderID]; !ok {
		return fmt.Errorf("order %d: %w", d.OrderID, apperr.ErrNotFound)
	}
	if _, ok := t.st.couriers[d.CourierID]; !ok {
		return fmt.Errorf("courier %d: %w", d.CourierID, apperr.ErrNotFound)
	}
	for _, existing := range t.st.deliveries {
		if existing.OrderID == d.OrderID && existing.Status.Active() {
			return fmt.Errorf("order %d already has an active delivery: %w", d.OrderID, apperr.ErrConflict)
		}
	}
	if d.Status == "" {
		d.Status = domain.DeliveryAssigned
	}
	t.st.nextID++
	d.ID = t.st.nextID
	t.st.deliveries = append(t.st.deliveries, *d)
	return nil
}

func (t *txView) GetActiveDelivery(_ context.Context, orderID int64) (*domain.Delivery, error) {
	if err := t.fail("GetActiveDelivery"); err != nil {
		return nil, err
	}
	for _, d := range t.st.deliveries {
		if d.OrderID == orderID && d.Status.Active() {
			return &d, nil
		}
	}
	return nil, nil
}

func (t *txView) UpdateDeliveryStatus(_ context.Context, deliveryID int64, status domain.DeliveryStatus, at time.Time) error {
	if err := t.fail("UpdateDeliveryStatus"); err != nil {
		return err
	}
	return t.updateDelivery(deliveryID, func(d *domain.Delivery) {
		d.Status = status
		switch status {
		case domain.DeliveryPicked:
			d.PickedAt = &at
		case domain.DeliveryCompleted, domain.DeliveryCancelled:
			d.CompletedAt = &at
		}
	})
}

func (t *txView) UpdateDeliveryLocation(_ context.Context, deliveryID int64, p geo.Point) error {
	if err := t.fail("UpdateDeliveryLocation"); err != nil {
		return err
	}
	return t.updateDelivery(deliveryID, func(d *domain.Delivery) { d.CurrentLocation = &p })
}

func (t *txView) updateDelivery(id int64, fn func(*domain.Delivery)) error {
	for i := range t.st.deliveries {
		if t.st.deliveries[i].ID == id {
			fn(&t.st.deliveries[i])
			return nil
		}
	}
	return fmt.Errorf("delivery %d: %w", id, apperr.ErrNotFound)
}

func (t *txView) LockCourier(_ context.Context, courierID int64) (*domain.Courier, error) {
	if err := t.fail("LockCourier"); err != nil {
		return nil, err
	}
	c, ok := t.st.couriers[courierID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *txView) CountActiveDeliveries(_ context.Context, courierID int64) (int, error) {
	if err := t.fail("CountActiveDeliveries"); err != nil {
		return 0, err
	}
	return activeCount(t.st.deliveries, courierID), nil
}

func (t *txView) SetActiveDeliveries(_ context.Context, courierID int64, n int) error {
	if err := t.fail("SetActiveDeliveries"); err != nil {
		return err
	}
	return t.updateCourier(courierID, func(c *domain.Courier) { c.ActiveDeliveries = n })
}

func (t *txView) SetAvailability(_ context.Context, courierID int64, available bool) error {
	if err := t.fail("SetAvailability"); err != nil {
		return err
	}
	return t.updateCourier(courierID, func(c *domain.Courier) { c.Available = available })
}

func (t *txView) UpdateCourierLocation(_ context.Context, courierID int64, p geo.Point, at time.Time) error {
	if err := t.fail("UpdateCourierLocation"); err != nil {
		return err
	}
	return t.updateCourier(courierID, func(c *domain.Courier) {
		c.Location = &p
		c.LocationUpdatedAt = at
	})
}

func (t *txView) AppendLocationHistory(_ context.Context, e *domain.LocationHistoryEntry) error {
	if err := t.fail("AppendLocationHistory"); err != nil {
		return err
	}
	if _, ok := t.st.couriers[e.CourierID]; !ok {
		return fmt.Errorf("courier %d: %w", e.CourierID, apperr.ErrNotFound)
	}
	t.st.nextID++
	e.ID = t.st.nextID
	t.st.history = append(t.st.history, *e)
	return nil
}

func (t *txView) updateCourier(id int64, fn func(*domain.Courier)) error {
	c, ok := t.st.couriers[id]
	if !ok {
		return fmt.Errorf("courier %d: %w", id, apperr.ErrNotFound)
	}
	fn(&c)
	t.st.couriers[id] = c
	return nil
}
