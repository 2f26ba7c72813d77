package handlers

import (
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/service/scoring"
)

func pointToDTO(p *geo.Point) *locationDTO {
	if p == nil {
		return nil
	}
	return &locationDTO{Lat: p.Lat, Lng: p.Lng}
}

func (req createCourierRequest) toModel(id int64) *domain.Courier {
	return &domain.Courier{
		ID:            id,
		Name:          req.Name,
		Phone:         req.Phone,
		TransportType: req.TransportType,
	}
}

func (req updateCourierRequest) toModel(id int64) domain.PartialCourierUpdate {
	return domain.PartialCourierUpdate{
		ID:            id,
		Name:          req.Name,
		Phone:         req.Phone,
		TransportType: req.TransportType,
	}
}

func modelToResponse(c domain.Courier) courierDTO {
	out := courierDTO{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		TransportType:    c.TransportType,
		Rating:           c.Rating,
		Location:         pointToDTO(c.Location),
		Online:           c.Online,
		Available:        c.Available,
		Active:           c.Active,
		ActiveDeliveries: c.ActiveDeliveries,
	}
	if !c.LocationUpdatedAt.IsZero() {
		at := c.LocationUpdatedAt
		out.LocationUpdatedAt = &at
	}
	return out
}

func modelsToResponse(list []domain.Courier) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, modelToResponse(c))
	}
	return out
}

func assignmentToResponse(a domain.Assignment) assignmentResponse {
	assignedAt, deadline := a.AssignedAt, a.Deadline
	return assignmentResponse{
		Assigned:         true,
		DeliveryID:       a.DeliveryID,
		OrderID:          a.OrderID,
		CourierID:        a.CourierID,
		AssignedAt:       &assignedAt,
		Deadline:         &deadline,
		EstimatedArrival: a.EstimatedArrival,
		OnTime:           a.OnTime,
	}
}

func candidatesToResponse(list []scoring.Candidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(list))
	for _, c := range list {
		out = append(out, candidateDTO{
			CourierID:        c.CourierID,
			DistanceKM:       c.DistanceKM,
			Score:            c.Score,
			Rating:           c.Rating,
			ActiveDeliveries: c.ActiveDeliveries,
			TransportType:    c.TransportType,
		})
	}
	return out
}

func statusChangeToResponse(c domain.StatusChange) statusChangeDTO {
	return statusChangeDTO{
		OrderID:   c.OrderID,
		From:      c.From,
		Status:    c.To,
		CourierID: c.CourierID,
		ChangedAt: c.ChangedAt,
	}
}

func trackingToResponse(t domain.Tracking) trackingDTO {
	return trackingDTO{
		OrderID:          t.OrderID,
		Status:           t.Status,
		CourierID:        t.CourierID,
		DeliveryStatus:   t.DeliveryStatus,
		Location:         pointToDTO(t.Location),
		EstimatedArrival: t.EstimatedArrival,
		UpdatedAt:        t.UpdatedAt,
	}
}
