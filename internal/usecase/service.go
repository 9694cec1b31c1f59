package usecase

import (
	"tourism-booking/internal/authz"
	"tourism-booking/internal/cache"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/mutation"
	"tourism-booking/internal/notify"
	"tourism-booking/internal/queue"
	"tourism-booking/internal/storage"
	"tourism-booking/pkg/database"
	"tourism-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	Partner       PartnerService
	Booking       BookingService
	Accommodation AccommodationService
	Catalog       CatalogService
	Event         EventService
	Restaurant    RestaurantService
	Preference    PreferenceService
	Voucher       VoucherService
	Health        HealthService
}

// Dependencies carries the shared infrastructure services depend on
// beyond the repositories.
type Dependencies struct {
	DB       database.PgxIface
	Cache    *cache.QueryCache
	Debounce *mutation.Debouncer
	Notifier notify.Notifier
	Events   queue.Publisher
	Resolver *authz.Resolver
	Perms    *authz.PermissionCache
	Media    *storage.MediaStore
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger, deps Dependencies) *Service {
	return &Service{
		Auth:          NewAuthService(repo, config, deps.Resolver, deps.Perms, log),
		Partner:       NewPartnerService(repo, deps.Resolver, log),
		Booking:       NewBookingService(repo, deps.Cache, deps.Notifier, deps.Events, log),
		Accommodation: NewAccommodationService(repo, deps.Cache, deps.Debounce, deps.Notifier, log),
		Catalog:       NewCatalogService(repo, deps.Cache, deps.Notifier, log),
		Event:         NewEventService(repo, deps.Cache, deps.Notifier, deps.Events, log),
		Restaurant:    NewRestaurantService(repo, deps.Notifier, log),
		Preference:    NewPreferenceService(repo, deps.Notifier, log),
		Voucher:       NewVoucherService(repo, log),
		Health:        NewHealthService(deps.DB, config, deps.Media, log),
	}
}
