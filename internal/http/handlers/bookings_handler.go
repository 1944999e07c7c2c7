package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/service"
)

type BookingsHandler struct {
	bookings service.BookingService
}

func NewBookingsHandler(bookings service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	bookings, err := h.bookings.ListByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list bookings", "error", err)
		response.InternalError(w, "failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	response.JSON(w, http.StatusOK, bookings)
}

func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.GuideName == "" {
		response.BadRequest(w, "email and guideName are required")
		return
	}

	id, err := h.bookings.Create(r.Context(), &req)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create booking", "error", err)
		response.InternalError(w, "failed to create booking")
		return
	}
	response.Inserted(w, id)
}

// UpdateStatus drives the booking lifecycle from the owner's dashboard and
// answers with a store-style update acknowledgment.
func (h *BookingsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.applyStatusChange(w, r) {
		response.Updated(w, 1, 1)
	}
}

// UpdateTourStatus is the guide-facing status change used by the assigned
// tours board.
func (h *BookingsHandler) UpdateTourStatus(w http.ResponseWriter, r *http.Request) {
	if h.applyStatusChange(w, r) {
		response.JSON(w, http.StatusOK, map[string]string{"message": "tour status updated successfully"})
	}
}

func (h *BookingsHandler) applyStatusChange(w http.ResponseWriter, r *http.Request) bool {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid tour id")
		return false
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Status == "" {
		response.BadRequest(w, "status is required")
		return false
	}

	_, err := h.bookings.UpdateStatus(r.Context(), id, in.Status)
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrUnknownStatus):
		response.BadRequest(w, "unknown booking status")
	case errors.Is(err, service.ErrIllegalTransition):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrStatusUnchanged):
		response.NotFound(w, "tour not found or status already updated")
	default:
		logger.ErrorContext(r.Context(), "failed to update tour status", "error", err)
		response.InternalError(w, "failed to update tour status")
	}
	return false
}

func (h *BookingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid booking id")
		return
	}

	count, err := h.bookings.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete booking", "error", err)
		response.InternalError(w, "failed to delete booking")
		return
	}
	response.Deleted(w, count)
}

// AssignedTours lists a guide's active workload; cancelled tours are
// filtered at the store.
func (h *BookingsHandler) AssignedTours(w http.ResponseWriter, r *http.Request) {
	guideName := chi.URLParam(r, "guideName")

	tours, err := h.bookings.AssignedTours(r.Context(), guideName)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list assigned tours", "error", err)
		response.InternalError(w, "failed to fetch assigned tours")
		return
	}
	if tours == nil {
		tours = []domain.Booking{}
	}
	response.JSON(w, http.StatusOK, tours)
}
