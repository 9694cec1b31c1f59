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

type PartnerHandler struct {
	service usecase.PartnerService
	log     *zap.Logger
}

func NewPartnerHandler(service usecase.PartnerService, log *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		service: service,
		log:     log.With(zap.String("handler", "partner")),
	}
}

// BecomePartner handles POST /api/partner (protected)
func (h *PartnerHandler) BecomePartner(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BecomePartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	partner, err := h.service.BecomePartner(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "become partner")
		return
	}

	utils.ResponseCreated(w, "success", partner)
}

// Me handles GET /api/partner (partner)
func (h *PartnerHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	partner, err := h.service.GetByUserID(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get partner profile")
		return
	}

	utils.ResponseSuccess(w, "success", partner)
}

// Verify handles POST /api/admin/partners/{id}/verify (admin)
func (h *PartnerHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Verify(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "verify partner")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
