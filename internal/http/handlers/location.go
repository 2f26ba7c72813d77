package handlers

import (
	"net/http"

	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/logx"
)

// LocationHandler ingests courier pings.
type LocationHandler struct {
	uc     locationUsecase
	logger logx.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(logger logx.Logger, uc locationUsecase) *LocationHandler {
	return &LocationHandler{uc: uc, logger: logger}
}

// Update handles POST /couriers/me/location. With an order id the ping is
// also recorded against that order's delivery and pushed to its room.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p := geo.Point{Lat: req.Lat, Lng: req.Lng}
	var err error
	if req.OrderID != nil {
		err = h.uc.UpdateLocationForOrder(r.Context(), *req.OrderID, userID, p)
	} else {
		err = h.uc.UpdateCourierLocation(r.Context(), userID, p)
	}
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
