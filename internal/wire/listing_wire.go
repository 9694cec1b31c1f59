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

func wireListings(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	resolver *authz.Resolver,
	perms *authz.PermissionCache,
	log *zap.Logger,
) {
	// Public browsing
	r.Get("/api/accommodations", handler.Accommodation.List)
	r.Get("/api/accommodations/featured", handler.Accommodation.Featured)
	r.Get("/api/accommodations/{id}", handler.Accommodation.Get)
	r.Get("/api/tours", handler.Catalog.ListTours)
	r.Get("/api/tours/{id}", handler.Catalog.GetTour)
	r.Get("/api/vehicles", handler.Catalog.ListVehicles)
	r.Get("/api/vehicles/{id}", handler.Catalog.GetVehicle)
	r.Get("/api/products", handler.Catalog.ListProducts)
	r.Get("/api/products/{id}", handler.Catalog.GetProduct)

	// Partner management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))
		r.Use(middleware.Partner(resolver, log))

		r.Post("/api/accommodations", handler.Accommodation.Create)
		r.Put("/api/accommodations/{id}", handler.Accommodation.Update)
		r.Patch("/api/accommodations/{id}/availability", handler.Accommodation.SetAvailability)
		r.Get("/api/partner/accommodations", handler.Accommodation.Mine)

		r.Post("/api/tours", handler.Catalog.CreateTour)
		r.Post("/api/vehicles", handler.Catalog.CreateVehicle)
		r.Post("/api/products", handler.Catalog.CreateProduct)
		r.Patch("/api/products/{id}/stock", handler.Catalog.AdjustStock)

		// Deletes go through the permission cache on top of the role gate.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(perms, authz.PermissionDelete, log))

			r.Delete("/api/accommodations/{id}", handler.Accommodation.Delete)
			r.Delete("/api/tours/{id}", handler.Catalog.DeleteTour)
			r.Delete("/api/vehicles/{id}", handler.Catalog.DeleteVehicle)
			r.Delete("/api/products/{id}", handler.Catalog.DeleteProduct)
		})
	})

	// Featured placement is an admin decision.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, log))
		r.Use(middleware.Admin(resolver, log))

		r.Patch("/api/accommodations/{id}/featured", handler.Accommodation.SetFeatured)
	})
}
