package adaptor

import (
	"tourism-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	Partner       *PartnerHandler
	Booking       *BookingHandler
	Accommodation *AccommodationHandler
	Catalog       *CatalogHandler
	Event         *EventHandler
	Restaurant    *RestaurantHandler
	Preference    *PreferenceHandler
	Voucher       *VoucherHandler
	Health        *HealthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		Partner:       NewPartnerHandler(service.Partner, log),
		Booking:       NewBookingHandler(service.Booking, log),
		Accommodation: NewAccommodationHandler(service.Accommodation, log),
		Catalog:       NewCatalogHandler(service.Catalog, log),
		Event:         NewEventHandler(service.Event, log),
		Restaurant:    NewRestaurantHandler(service.Restaurant, log),
		Preference:    NewPreferenceHandler(service.Preference, log),
		Voucher:       NewVoucherHandler(service.Voucher, log),
		Health:        NewHealthHandler(service.Health, log),
	}
}
