package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"swiftship/internal/apperr"
	"swiftship/internal/domain"
	"swiftship/internal/http/middleware"
	"swiftship/internal/logx"
)

// DriverHandler serves the driver-facing endpoints.
type DriverHandler struct {
	usecase driverUsecase
	logger  logx.Logger
}

// NewDriverHandler wires a driverUsecase into HTTP handlers.
func NewDriverHandler(logger logx.Logger, uc driverUsecase) *DriverHandler {
	return &DriverHandler{usecase: uc, logger: logger}
}

func (h *DriverHandler) actor(w http.ResponseWriter, r *http.Request) (middleware.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
	}
	return actor, ok
}

// Tasks handles GET /driver/tasks.
func (h *DriverHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	list, err := h.usecase.Tasks(r.Context(), actor.ID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"tasks": bookingsToResponse(list)})
}

// UpdateStatus handles PUT /driver/tasks/{bookingId}/status.
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	bookingID := chi.URLParam(r, "bookingId")
	b, err := h.usecase.UpdateStatus(r.Context(), actor.ID, bookingID, domain.BookingStatus(req.Status))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{
			"booking": bookingToResponse(*b),
			"msg":     "Status updated successfully",
		})
	case errors.Is(err, apperr.ErrInvalidStatus):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "booking not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SetAvailability handles PUT /driver/availability.
func (h *DriverHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req availabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	got, err := h.usecase.SetAvailability(r.Context(), actor.ID, req.IsAvailable)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"isAvailable": got})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "driver not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Stats handles GET /driver/stats.
func (h *DriverHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	stats, err := h.usecase.Stats(r.Context(), actor.ID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"stats": statsToResponse(stats)})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "driver not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// History handles GET /driver/history.
func (h *DriverHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	list, err := h.usecase.History(r.Context(), actor.ID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"rides": bookingsToResponse(list)})
}

// ClearHistory handles DELETE /driver/history.
func (h *DriverHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	if _, err := h.usecase.ClearHistory(r.Context(), actor.ID); err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"msg": "Ride history cleared successfully"})
}

// UpdateProfile handles PUT /driver/profile.
func (h *DriverHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.UpdateProfile(r.Context(), req.toModel(actor.ID))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{
			"driver": driverToResponse(*d),
			"msg":    "Profile updated successfully",
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "driver not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// FindAvailable handles POST /driver/find-available. Public: customers
// probe for a match before committing to a booking.
func (h *DriverHandler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	var req findDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, vt, err := h.usecase.FindAvailable(r.Context(), req.Items)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{
			"driver":      driverToResponse(*d),
			"vehicleType": vt,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "item list is required")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, err.Error())
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
