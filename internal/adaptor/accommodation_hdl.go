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

type AccommodationHandler struct {
	service usecase.AccommodationService
	log     *zap.Logger
}

func NewAccommodationHandler(service usecase.AccommodationService, log *zap.Logger) *AccommodationHandler {
	return &AccommodationHandler{
		service: service,
		log:     log.With(zap.String("handler", "accommodation")),
	}
}

// Create handles POST /api/accommodations (partner)
func (h *AccommodationHandler) Create(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	acc, err := h.service.Create(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create accommodation")
		return
	}

	utils.ResponseCreated(w, "success", acc)
}

// List handles GET /api/accommodations (public)
func (h *AccommodationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	req := &request.PaginatedRequest{Page: page, PerPage: perPage}

	list, err := h.service.ListAvailable(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list accommodations")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// Featured handles GET /api/accommodations/featured (public)
func (h *AccommodationHandler) Featured(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListFeatured(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list featured accommodations")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// Get handles GET /api/accommodations/{id} (public)
func (h *AccommodationHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get accommodation")
		return
	}

	utils.ResponseSuccess(w, "success", acc)
}

// Update handles PUT /api/accommodations/{id} (partner)
func (h *AccommodationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	acc, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update accommodation")
		return
	}

	utils.ResponseSuccess(w, "success", acc)
}

// SetFeatured handles PATCH /api/accommodations/{id}/featured (admin)
func (h *AccommodationHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	var req request.SetFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetFeatured(r.Context(), chi.URLParam(r, "id"), req.IsFeatured); err != nil {
		writeServiceError(w, h.log, err, "set featured")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetAvailability handles PATCH /api/accommodations/{id}/availability (partner)
func (h *AccommodationHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetAvailability(r.Context(), chi.URLParam(r, "id"), req.IsAvailable); err != nil {
		writeServiceError(w, h.log, err, "set availability")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Delete handles DELETE /api/accommodations/{id} (partner)
func (h *AccommodationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete accommodation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Mine handles GET /api/partner/accommodations (partner)
func (h *AccommodationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	list, err := h.service.ListByPartner(r.Context(), partnerID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "list partner accommodations")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}
