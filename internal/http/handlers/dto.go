package handlers

import (
	"time"

	"service-courier-tracking/internal/domain"
)

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type courierDTO struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	Phone             string               `json:"phone"`
	TransportType     domain.TransportType `json:"transport_type"`
	Rating            float64              `json:"rating"`
	Location          *locationDTO         `json:"location,omitempty"`
	LocationUpdatedAt *time.Time           `json:"location_updated_at,omitempty"`
	Online            bool                 `json:"online"`
	Available         bool                 `json:"available"`
	Active            bool                 `json:"active"`
	ActiveDeliveries  int                  `json:"active_deliveries"`
}

type createCourierRequest struct {
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	TransportType domain.TransportType `json:"transport_type"`
}

type updateCourierRequest struct {
	Name          *string               `json:"name,omitempty"`
	Phone         *string               `json:"phone,omitempty"`
	TransportType *domain.TransportType `json:"transport_type,omitempty"`
}

type onlineRequest struct {
	Online bool `json:"online"`
}

type locationRequest struct {
	OrderID *int64  `json:"order_id,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type assignmentResponse struct {
	Assigned         bool       `json:"assigned"`
	DeliveryID       int64      `json:"delivery_id,omitempty"`
	OrderID          int64      `json:"order_id,omitempty"`
	CourierID        int64      `json:"courier_id,omitempty"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
	OnTime           bool       `json:"on_time,omitempty"`
	Warning          string     `json:"warning,omitempty"`
}

type candidateDTO struct {
	CourierID        int64                `json:"courier_id"`
	DistanceKM       float64              `json:"distance_km"`
	Score            float64              `json:"score"`
	Rating           float64              `json:"rating"`
	ActiveDeliveries int                  `json:"active_deliveries"`
	TransportType    domain.TransportType `json:"transport_type"`
}

type statusChangeDTO struct {
	OrderID   int64              `json:"order_id"`
	From      domain.OrderStatus `json:"from"`
	Status    domain.OrderStatus `json:"status"`
	CourierID *int64             `json:"courier_id,omitempty"`
	ChangedAt time.Time          `json:"changed_at"`
}

type trackingDTO struct {
	OrderID          int64                 `json:"order_id"`
	Status           domain.OrderStatus    `json:"status"`
	CourierID        *int64                `json:"courier_id,omitempty"`
	DeliveryStatus   domain.DeliveryStatus `json:"delivery_status,omitempty"`
	Location         *locationDTO          `json:"location,omitempty"`
	EstimatedArrival *time.Time            `json:"estimated_arrival,omitempty"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
