package wire

import (
	"tourism-booking/internal/adaptor"
	"tourism-booking/internal/data/repository"
	"tourism-booking/pkg/middleware"
	"tourism-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public
	r.Post("/api/register", handler.Auth.Register)
	r.Post("/api/login", handler.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))

		r.Post("/api/logout", handler.Auth.Logout)
		r.Get("/api/profile", handler.Auth.Profile)
		r.Get("/api/profile/roles", handler.Auth.Roles)

		r.Post("/api/partner", handler.Partner.BecomePartner)
		r.Get("/api/partner", handler.Partner.Me)

		r.Put("/api/preferences", handler.Preference.Save)
		r.Get("/api/preferences", handler.Preference.Get)
	})
}
