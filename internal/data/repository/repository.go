package repository

import (
	"tourism-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Role          RoleRepository
	Partner       PartnerRepository
	Booking       BookingRepository
	Accommodation AccommodationRepository
	Tour          TourRepository
	Event         EventRepository
	Vehicle       VehicleRepository
	Product       ProductRepository
	Restaurant    RestaurantRepository
	Preference    PreferenceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Role:          NewRoleRepository(db, log),
		Partner:       NewPartnerRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		Accommodation: NewAccommodationRepository(db, log),
		Tour:          NewTourRepository(db, log),
		Event:         NewEventRepository(db, log),
		Vehicle:       NewVehicleRepository(db, log),
		Product:       NewProductRepository(db, log),
		Restaurant:    NewRestaurantRepository(db, log),
		Preference:    NewPreferenceRepository(db, log),
	}
}
