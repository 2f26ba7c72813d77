package handlers

import (
	"errors"
	"net/http"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/logx"
)

const postAssignmentWarning = "courier load update pending; availability will be reconciled"

// OrderHandler serves dispatch and tracking endpoints of an order. Every
// endpoint requires the caller to be a principal of the order.
type OrderHandler struct {
	dispatch dispatchUsecase
	tracking trackingUsecase
	logger   logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, d dispatchUsecase, t trackingUsecase) *OrderHandler {
	return &OrderHandler{dispatch: d, tracking: t, logger: logger}
}

func (h *OrderHandler) authorized(w http.ResponseWriter, r *http.Request) (userID, orderID int64, ok bool) {
	userID, ok = caller(h.logger, w, r)
	if !ok {
		return 0, 0, false
	}
	orderID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return 0, 0, false
	}
	if err := h.tracking.Authorize(r.Context(), userID, orderID); err != nil {
		writeAppError(h.logger, w, r, err)
		return 0, 0, false
	}
	return userID, orderID, true
}

// Dispatch handles POST /orders/{id}/dispatch.
//
// 201 carries the assignment, with a warning when the courier's load could
// not be refreshed. 200 {"assigned":false} means no eligible courier.
func (h *OrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	_, orderID, ok := h.authorized(w, r)
	if !ok {
		return
	}

	a, found, err := h.dispatch.Dispatch(r.Context(), orderID)
	switch {
	case err == nil && !found:
		writeJSON(h.logger, w, r, http.StatusOK, assignmentResponse{Assigned: false})
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, assignmentToResponse(a))
	case found && errors.Is(err, apperr.ErrPostAssignmentUpdate):
		resp := assignmentToResponse(a)
		resp.Warning = postAssignmentWarning
		writeJSON(h.logger, w, r, http.StatusCreated, resp)
	default:
		writeAppError(h.logger, w, r, err)
	}
}

// Candidates handles GET /orders/{id}/candidates: the ranked pool without
// assigning anyone.
func (h *OrderHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	_, orderID, ok := h.authorized(w, r)
	if !ok {
		return
	}
	list, err := h.dispatch.Candidates(r.Context(), orderID)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, candidatesToResponse(list))
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	orderID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	change, err := h.tracking.UpdateStatus(r.Context(), userID, orderID, req.Status)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusChangeToResponse(change))
}

// Track handles GET /orders/{id}/tracking.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	orderID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.tracking.Track(r.Context(), userID, orderID)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingToResponse(t))
}
