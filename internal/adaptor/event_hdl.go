package adaptor

import (
	"encoding/json"
	"net/http"

	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/usecase"
	"tourism-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// Create handles POST /api/events (partner)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.Create(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// List handles GET /api/events (public)
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	list, err := h.service.ListUpcoming(r.Context(), &request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeServiceError(w, h.log, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// Get handles GET /api/events/{id} (public)
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// Delete handles DELETE /api/events/{id} (partner)
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Book handles POST /api/events/bookings (protected)
func (h *EventHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateEventBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.BookEvent(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "book event")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles POST /api/events/bookings/{id}/cancel (protected)
func (h *EventHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.CancelEventBooking(r.Context(), userID.String(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "cancel event booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// MyBookings handles GET /api/events/bookings (protected)
func (h *EventHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserEventBookings(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get event bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
