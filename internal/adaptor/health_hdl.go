package adaptor

import (
	"net/http"

	"tourism-booking/internal/usecase"
	"tourism-booking/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	service usecase.HealthService
	log     *zap.Logger
}

func NewHealthHandler(service usecase.HealthService, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		log:     log.With(zap.String("handler", "health")),
	}
}

// Check handles GET /health. Unhealthy systems answer 503 so load
// balancers rotate the instance out.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	result := h.service.Check(r.Context())

	if result.Status != "healthy" {
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, result.Status, result, nil)
		return
	}

	utils.ResponseSuccess(w, result.Status, result)
}
