package adaptor

import (
	"net/http"
	"strings"

	"tourism-booking/pkg/apperr"
	"tourism-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError translates a service error into the response envelope.
// Classified errors (pg codes, jwt, network) carry localized user messages;
// everything else falls back to matching the error text.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	log.Warn(operation+" failed",
		zap.Error(err),
		zap.String("operation", operation))

	if kind := apperr.Classify(err); kind != apperr.KindUnknown && kind != apperr.KindNotFound {
		utils.ResponseJSON(w, apperr.HTTPStatus(kind), false, apperr.UserMessage(kind), nil, err.Error())
		return
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.ResponseNotFound(w, msg)
	case strings.Contains(msg, "does not belong"):
		utils.ResponseForbidden(w, msg)
	case strings.Contains(msg, "already"):
		utils.ResponseConflict(w, msg)
	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "must"),
		strings.Contains(msg, "not available"),
		strings.Contains(msg, "fewer than"),
		strings.Contains(msg, "deactivated"),
		strings.Contains(msg, "unknown"):
		utils.ResponseBadRequest(w, msg, nil)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func paginationFromQuery(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	return utils.ParseInt(query.Get("page"), 1), utils.ParseInt(query.Get("per_page"), 10)
}
