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

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateTour handles POST /api/tours (partner)
func (h *CatalogHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.CreateTour(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create tour")
		return
	}

	utils.ResponseCreated(w, "success", tour)
}

// ListTours handles GET /api/tours (public)
func (h *CatalogHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	list, err := h.service.ListTours(r.Context(), &request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeServiceError(w, h.log, err, "list tours")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetTour handles GET /api/tours/{id} (public)
func (h *CatalogHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	tour, err := h.service.GetTour(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}

// DeleteTour handles DELETE /api/tours/{id} (partner)
func (h *CatalogHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTour(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete tour")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateVehicle handles POST /api/vehicles (partner)
func (h *CatalogHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	vehicle, err := h.service.CreateVehicle(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "success", vehicle)
}

// ListVehicles handles GET /api/vehicles (public)
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	list, err := h.service.ListVehicles(r.Context(), &request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeServiceError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetVehicle handles GET /api/vehicles/{id} (public)
func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.service.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/{id} (partner)
func (h *CatalogHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateProduct handles POST /api/products (partner)
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), partnerID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "success", product)
}

// ListProducts handles GET /api/products (public)
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	list, err := h.service.ListProducts(r.Context(), &request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetProduct handles GET /api/products/{id} (public)
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "success", product)
}

// AdjustStock handles PATCH /api/products/{id}/stock (partner)
func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req request.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta); err != nil {
		writeServiceError(w, h.log, err, "adjust stock")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteProduct handles DELETE /api/products/{id} (partner)
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
