package middleware

import (
	"net/http"
	"strings"

	"tourism-booking/internal/data/repository"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthSession validates the bearer credential. A session UUID is checked
// against the sessions table (revocable); a JWT access token is verified
// statelessly. Both put the user ID and primary role on the context.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			if _, err := uuid.Parse(token); err == nil {
				session, err := sessionRepo.FindValidSession(r.Context(), token)
				if err != nil {
					logger.Error("Failed to validate session", zap.Error(err))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				if session == nil {
					logger.Warn("Invalid or expired session")
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}

				user, err := userRepo.FindByID(r.Context(), session.UserID)
				if err != nil || user == nil {
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}

				ctx := utils.SetUserContext(r.Context(), session.UserID, string(user.Role))
				ctx = utils.SetTokenContext(ctx, token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := utils.ParseAccessToken(token, config.JWT.Secret)
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token claims")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetTokenContext(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
