package handlers

import (
	"net/http"
	"strconv"

	"service-courier-tracking/internal/logx"
)

// CourierHandler serves HTTP endpoints for courier resources. Writes are
// self-only: the courier is the authenticated user.
type CourierHandler struct {
	uc     courierUsecase
	logger logx.Logger
}

// NewCourierHandler wires a courier usecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	return &CourierHandler{uc: uc, logger: logger}
}

// GetByID handles GET /couriers/{id}.
func (h *CourierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(*c))
}

// List handles GET /couriers.
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		limitPtr, offsetPtr *int
	)
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limitPtr = &v
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid offset")
			return
		}
		offsetPtr = &v
	}

	list, err := h.uc.List(r.Context(), limitPtr, offsetPtr)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelsToResponse(list))
}

// Create handles POST /couriers. The courier id is the caller's user id.
func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req createCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c := req.toModel(userID)
	if err := h.uc.Create(r.Context(), c); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/couriers/"+strconv.FormatInt(c.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, modelToResponse(*c))
}

// Update handles PATCH /couriers/me.
func (h *CourierHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req updateCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.uc.UpdatePartial(r.Context(), req.toModel(userID)); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// SetOnline handles PUT /couriers/me/online.
func (h *CourierHandler) SetOnline(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req onlineRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.uc.SetOnline(r.Context(), userID, req.Online)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(*c))
}

// Deactivate handles DELETE /couriers/me.
func (h *CourierHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	if err := h.uc.Deactivate(r.Context(), userID); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
