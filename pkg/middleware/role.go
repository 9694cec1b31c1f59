package middleware

import (
	"net/http"

	"tourism-booking/internal/authz"
	"tourism-booking/pkg/apperr"
	"tourism-booking/pkg/utils"

	"go.uber.org/zap"
)

// RequireRole gates a route on a role grant. Master accounts and admins
// pass every gate; everyone else needs the grant itself.
func RequireRole(resolver *authz.Resolver, role authz.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// The auth middleware stored the credential's primary role;
			// when it already matches, skip the resolver round trip.
			if primary, ok := utils.GetRoleFromContext(r.Context()); ok && authz.Role(primary) == role {
				next.ServeHTTP(w, r)
				return
			}

			snapshot, err := resolver.Resolve(r.Context(), userID)
			if err != nil {
				logger.Error("Role resolution failed",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if snapshot.Master || snapshot.IsAdmin {
				next.ServeHTTP(w, r)
				return
			}

			hasRole, err := resolver.HasRole(r.Context(), userID, role)
			if err != nil {
				logger.Error("Role check failed",
					zap.Error(err),
					zap.String("user_id", userID.String()),
					zap.String("role", string(role)))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !hasRole {
				logger.Warn("Access denied",
					zap.String("user_id", userID.String()),
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, apperr.UserMessage(apperr.KindPermission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin is a shorthand gate for admin-only routes.
func Admin(resolver *authz.Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(resolver, authz.RoleAdmin, logger)
}

// Partner gates partner-only routes.
func Partner(resolver *authz.Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(resolver, authz.RolePartner, logger)
}

// RequirePermission gates a route on a cached permission check.
func RequirePermission(perms *authz.PermissionCache, permission authz.Permission, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			allowed, err := perms.Check(r.Context(), userID, permission)
			if err != nil {
				logger.Error("Permission check failed",
					zap.Error(err),
					zap.String("user_id", userID.String()),
					zap.String("permission", string(permission)))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !allowed {
				logger.Warn("Permission denied",
					zap.String("user_id", userID.String()),
					zap.String("permission", string(permission)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, apperr.UserMessage(apperr.KindPermission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
