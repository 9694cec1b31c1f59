package wire

import (
	"tourism-booking/internal/adaptor"
	"tourism-booking/internal/authz"
	"tourism-booking/internal/data/repository"
	"tourism-booking/pkg/middleware"
	"tourism-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRestaurants(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	resolver *authz.Resolver,
	log *zap.Logger,
) {
	r.Get("/api/restaurants", handler.Restaurant.List)
	r.Get("/api/restaurants/{id}", handler.Restaurant.Get)
	r.Get("/api/restaurants/{id}/tables", handler.Restaurant.ListTables)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))

		r.Post("/api/reservations", handler.Restaurant.Reserve)
		r.Get("/api/reservations", handler.Restaurant.MyReservations)
		r.Post("/api/reservations/{id}/cancel", handler.Restaurant.CancelReservation)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Partner(resolver, log))

			r.Post("/api/restaurants", handler.Restaurant.Create)
			r.Delete("/api/restaurants/{id}", handler.Restaurant.Delete)
			r.Post("/api/restaurants/{id}/tables", handler.Restaurant.AddTable)
		})
	})
}
