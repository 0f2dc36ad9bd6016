package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"swiftship/internal/apperr"
	"swiftship/internal/http/middleware"
	"swiftship/internal/logx"
)

// BookingHandler serves HTTP endpoints for booking resources.
type BookingHandler struct {
	usecase bookingUsecase
	logger  logx.Logger
}

// NewBookingHandler wires a bookingUsecase into HTTP handlers.
func NewBookingHandler(logger logx.Logger, uc bookingUsecase) *BookingHandler {
	return &BookingHandler{usecase: uc, logger: logger}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createBookingRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	b, err := h.usecase.Create(r.Context(), actor.ID, req.toInput())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{
			"booking": bookingToResponse(*b),
			"msg":     "Booking created successfully",
		})
	case errors.Is(err, apperr.ErrNoDriver):
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "could not allocate booking id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /bookings and returns the caller's bookings, newest
// first.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.usecase.ListForUser(r.Context(), actor.ID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"bookings": bookingsToResponse(list)})
}

// GetByID handles GET /bookings/{bookingId}. Public: drivers use it to
// inspect an assignment before accepting.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	b, customerName, err := h.usecase.GetByBookingID(r.Context(), bookingID)
	switch {
	case err == nil:
		dto := bookingToResponse(*b)
		dto.CustomerName = customerName
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"booking": dto})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid booking id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "booking not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
