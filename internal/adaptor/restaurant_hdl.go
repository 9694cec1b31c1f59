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

type RestaurantHandler struct {
	service usecase.RestaurantService
	log     *zap.Logger
}

func NewRestaurantHandler(service usecase.RestaurantService, log *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		log:     log.With(zap.String("handler", "restaurant")),
	}
}

// Create handles POST /api/restaurants (partner)
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	restaurant, err := h.service.Create(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create restaurant")
		return
	}

	utils.ResponseCreated(w, "success", restaurant)
}

// List handles GET /api/restaurants (public)
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	list, err := h.service.ListActive(r.Context(), &request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeServiceError(w, h.log, err, "list restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// Get handles GET /api/restaurants/{id} (public)
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}

// Delete handles DELETE /api/restaurants/{id} (partner)
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// AddTable handles POST /api/restaurants/{id}/tables (partner)
func (h *RestaurantHandler) AddTable(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	table, err := h.service.AddTable(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add table")
		return
	}

	utils.ResponseCreated(w, "success", table)
}

// ListTables handles GET /api/restaurants/{id}/tables (public)
func (h *RestaurantHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "list tables")
		return
	}

	utils.ResponseSuccess(w, "success", tables)
}

// Reserve handles POST /api/reservations (protected)
func (h *RestaurantHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.Reserve(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "reserve table")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// CancelReservation handles POST /api/reservations/{id}/cancel (protected)
func (h *RestaurantHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.CancelReservation(r.Context(), userID.String(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// MyReservations handles GET /api/reservations (protected)
func (h *RestaurantHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservations, err := h.service.GetUserReservations(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}
