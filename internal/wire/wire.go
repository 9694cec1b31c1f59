package wire

import (
	"context"
	"time"

	"tourism-booking/internal/adaptor"
	"tourism-booking/internal/authz"
	"tourism-booking/internal/cache"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/mutation"
	"tourism-booking/internal/notify"
	"tourism-booking/internal/queue"
	"tourism-booking/internal/storage"
	"tourism-booking/internal/usecase"
	"tourism-booking/pkg/database"
	"tourism-booking/pkg/middleware"
	"tourism-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router   *chi.Mux
	Resolver *authz.Resolver
	Perms    *authz.PermissionCache
}

// Infra carries the process-level dependencies built in main.
type Infra struct {
	DB     database.PgxIface
	Redis  *redis.Client
	Events queue.Publisher
	Media  *storage.MediaStore
}

// Wiring assembles repositories, caches, services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, infra Infra) *App {
	resolver := authz.NewResolver(
		roleStore{roles: repo.Role},
		time.Duration(config.Cache.RoleStaleMinutes)*time.Minute,
		logger,
	)

	perms := authz.NewPermissionCache(
		time.Duration(config.Cache.PermissionTTLMinutes)*time.Minute,
		permissionCheck(resolver),
		logger,
	)

	queryCache := cache.NewQueryCache(time.Duration(config.Cache.QueryStaleMinutes) * time.Minute)
	debouncer := mutation.NewDebouncer(time.Duration(config.Cache.DebounceMillis) * time.Millisecond)
	notifier := notify.NewLogNotifier(logger)

	service := usecase.NewService(repo, config, logger, usecase.Dependencies{
		DB:       infra.DB,
		Cache:    queryCache,
		Debounce: debouncer,
		Notifier: notifier,
		Events:   infra.Events,
		Resolver: resolver,
		Perms:    perms,
		Media:    infra.Media,
	})
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, resolver, perms, infra, logger)

	return &App{
		Router:   router,
		Resolver: resolver,
		Perms:    perms,
	}
}

// permissionCheck backs the permission cache with real role resolution.
func permissionCheck(resolver *authz.Resolver) authz.CheckFunc {
	return func(ctx context.Context, userID uuid.UUID, permission authz.Permission) (bool, error) {
		snapshot, err := resolver.Resolve(ctx, userID)
		if err != nil {
			return false, err
		}
		if snapshot.Master {
			return true, nil
		}
		return authz.RolesSatisfy(snapshot.Roles, permission), nil
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	resolver *authz.Resolver,
	perms *authz.PermissionCache,
	infra Infra,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.BodyLimit(1 << 20))

	if infra.Redis != nil {
		store := middleware.NewRedisResponseStore(infra.Redis)
		r.Use(middleware.ResponseCache(store, time.Duration(config.Cache.ResponseTTLSeconds)*time.Second, logger))
	}

	wireAuth(r, handler, repo, config, logger)
	wireBooking(r, handler, repo, config, resolver, logger)
	wireListings(r, handler, repo, config, resolver, perms, logger)
	wireEvents(r, handler, repo, config, resolver, logger)
	wireRestaurants(r, handler, repo, config, resolver, logger)

	r.Get("/health", handler.Health.Check)

	// Full diagnostics behind the admin gate.
	r.Route("/api/admin/health", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, config, logger))
		r.Use(middleware.Admin(resolver, logger))
		r.Get("/", handler.Health.Check)
	})

	return r
}
