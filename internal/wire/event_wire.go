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

func wireEvents(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	resolver *authz.Resolver,
	log *zap.Logger,
) {
	r.Get("/api/events", handler.Event.List)
	r.Get("/api/events/{id}", handler.Event.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))

		r.Post("/api/events/bookings", handler.Event.Book)
		r.Get("/api/events/bookings", handler.Event.MyBookings)
		r.Post("/api/events/bookings/{id}/cancel", handler.Event.CancelBooking)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Partner(resolver, log))

			r.Post("/api/events", handler.Event.Create)
			r.Delete("/api/events/{id}", handler.Event.Delete)
		})
	})
}
