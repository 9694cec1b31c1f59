package middleware

import (
	"net/http"

	"tourism-booking/pkg/apperr"
	"tourism-booking/pkg/utils"
)

// BodyLimit caps request body size. Oversized requests are rejected with 413
// before the handler reads anything; bodies without a declared length are
// capped by MaxBytesReader during the read.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				utils.ResponsePayloadTooLarge(w, apperr.UserMessage(apperr.KindPayloadTooLarge))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
