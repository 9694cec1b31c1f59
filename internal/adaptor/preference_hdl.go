package adaptor

import (
	"encoding/json"
	"net/http"

	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/usecase"
	"tourism-booking/pkg/utils"

	"go.uber.org/zap"
)

type PreferenceHandler struct {
	service usecase.PreferenceService
	log     *zap.Logger
}

func NewPreferenceHandler(service usecase.PreferenceService, log *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: service,
		log:     log.With(zap.String("handler", "preference")),
	}
}

// Save handles PUT /api/preferences (protected)
func (h *PreferenceHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SavePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pref, err := h.service.Save(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "save preferences")
		return
	}

	utils.ResponseSuccess(w, "success", pref)
}

// Get handles GET /api/preferences (protected)
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	pref, err := h.service.Get(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get preferences")
		return
	}

	utils.ResponseSuccess(w, "success", pref)
}
