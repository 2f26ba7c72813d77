package repository

import (
	"time"

	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
)

type scanner interface {
	Scan(dest ...any) error
}

func pointOf(lat, lng *float64) *geo.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lng: *lng}
}

func coords(p *geo.Point) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lng
}

const courierColumns = `id, name, phone, transport_type, rating, lat, lng, location_updated_at,
	is_online, is_available, is_active, active_deliveries, created_at`

func scanCourier(row scanner) (*domain.Courier, error) {
	var (
		c         domain.Courier
		lat, lng  *float64
		updatedAt *time.Time
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.TransportType, &c.Rating, &lat, &lng, &updatedAt,
		&c.Online, &c.Available, &c.Active, &c.ActiveDeliveries, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Location = pointOf(lat, lng)
	if updatedAt != nil {
		c.LocationUpdatedAt = *updatedAt
	}
	return &c, nil
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.restaurant_id, r.owner_id, r.lat, r.lng,
	       o.dest_lat, o.dest_lng, o.prep_minutes, o.status, o.courier_id, o.created_at, o.updated_at
	FROM orders o
	JOIN restaurants r ON r.id = o.restaurant_id`

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		o           domain.Order
		rLat, rLng  float64
		dLat, dLng  *float64
		prepMinutes int
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.RestaurantOwnerID, &rLat, &rLng,
		&dLat, &dLng, &prepMinutes, &o.Status, &o.CourierID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.RestaurantLocation = &geo.Point{Lat: rLat, Lng: rLng}
	o.Destination = pointOf(dLat, dLng)
	o.PrepTime = time.Duration(prepMinutes) * time.Minute
	return &o, nil
}

const deliveryColumns = `id, order_id, courier_id, status, current_lat, current_lng,
	assigned_at, picked_at, completed_at, deadline, estimated_arrival`

func scanDelivery(row scanner) (*domain.Delivery, error) {
	var (
		d        domain.Delivery
		lat, lng *float64
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.CourierID, &d.Status, &lat, &lng,
		&d.AssignedAt, &d.PickedAt, &d.CompletedAt, &d.Deadline, &d.EstimatedArrival)
	if err != nil {
		return nil, err
	}
	d.CurrentLocation = pointOf(lat, lng)
	return &d, nil
}
