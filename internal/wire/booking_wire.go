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

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	resolver *authz.Resolver,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))

		r.Post("/api/bookings", handler.Booking.CreateBooking)
		r.Get("/api/bookings", handler.Booking.GetUserBookings)
		r.Get("/api/bookings/ref/{code}", handler.Booking.GetBookingByReference)
		r.Get("/api/bookings/{id}", handler.Booking.GetBooking)
		r.Post("/api/bookings/{id}/cancel", handler.Booking.CancelBooking)
		r.Get("/api/bookings/{id}/voucher", handler.Voucher.Download)

		// Confirmation needs the partner grant (admins pass the gate too).
		r.Group(func(r chi.Router) {
			r.Use(middleware.Partner(resolver, log))
			r.Post("/api/bookings/{id}/confirm", handler.Booking.ConfirmBooking)
			r.Get("/api/partner/bookings", handler.Booking.GetItemBookings)
		})
	})

	r.Route("/api/admin/partners", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))
		r.Use(middleware.Admin(resolver, log))

		r.Post("/{id}/verify", handler.Partner.Verify)
	})
}
