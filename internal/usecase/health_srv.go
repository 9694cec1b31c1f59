package usecase

import (
	"context"
	"fmt"
	"time"

	"tourism-booking/internal/dto/response"
	"tourism-booking/internal/storage"
	"tourism-booking/pkg/database"
	"tourism-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// criticalTables are probed individually: a missing table means a broken
// migration even when the connection itself is fine.
var criticalTables = []string{"users", "bookings", "accommodations", "user_roles", "partners"}

const probeTimeout = 3 * time.Second

type HealthService interface {
	Check(ctx context.Context) *response.HealthResponse
}

type healthService struct {
	db     database.PgxIface
	config *utils.Config
	media  *storage.MediaStore
	log    *zap.Logger
}

func NewHealthService(db database.PgxIface, config *utils.Config, media *storage.MediaStore, log *zap.Logger) HealthService {
	return &healthService{
		db:     db,
		config: config,
		media:  media,
		log:    log.With(zap.String("service", "health")),
	}
}

// Check runs every probe regardless of earlier failures so the response
// shows the whole picture. Status is "healthy" only when the connection,
// every critical table and the auth round-trip pass; the storage probe is
// advisory — missing buckets break voucher downloads, not the API.
func (s *healthService) Check(ctx context.Context) *response.HealthResponse {
	checks := []response.HealthCheckResult{
		s.probeConnection(ctx),
	}
	checks = append(checks, s.probeTables(ctx)...)
	checks = append(checks, s.probeAuth())

	status := "healthy"
	for _, check := range checks {
		if !check.Healthy {
			status = "unhealthy"
		}
	}

	checks = append(checks, s.probeStorage())

	for _, check := range checks {
		if !check.Healthy {
			s.log.Warn("Health probe failed",
				zap.String("probe", check.Name),
				zap.String("error", check.Error))
		}
	}

	return &response.HealthResponse{
		Status: status,
		Checks: checks,
	}
}

func (s *healthService) probeConnection(ctx context.Context) response.HealthCheckResult {
	_, err := utils.WithTimeout(ctx, probeTimeout, false, func(ctx context.Context) (bool, error) {
		var one int
		if err := s.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
			return false, err
		}
		return true, nil
	})

	return probeResult("database_connection", err)
}

func (s *healthService) probeTables(ctx context.Context) []response.HealthCheckResult {
	results := make([]response.HealthCheckResult, 0, len(criticalTables))
	for _, table := range criticalTables {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s LIMIT 1`, table)
		_, err := utils.WithTimeout(ctx, probeTimeout, false, func(ctx context.Context) (bool, error) {
			var count int64
			if err := s.db.QueryRow(ctx, query).Scan(&count); err != nil {
				return false, err
			}
			return true, nil
		})
		results = append(results, probeResult("table_"+table, err))
	}
	return results
}

// probeAuth signs and parses a throwaway token, catching a missing or
// rotated JWT secret before real requests hit it.
func (s *healthService) probeAuth() response.HealthCheckResult {
	if s.config.JWT.Secret == "" {
		return response.HealthCheckResult{Name: "auth", Error: "JWT secret is not configured"}
	}

	token, err := utils.GenerateAccessToken(uuid.New(), "customer", s.config.JWT.Secret, 1)
	if err == nil {
		_, err = utils.ParseAccessToken(token, s.config.JWT.Secret)
	}

	return probeResult("auth", err)
}

func (s *healthService) probeStorage() response.HealthCheckResult {
	if !s.media.BucketsOK() {
		return response.HealthCheckResult{Name: "storage", Error: "media buckets missing"}
	}
	return response.HealthCheckResult{Name: "storage", Healthy: true}
}

func probeResult(name string, err error) response.HealthCheckResult {
	if err != nil {
		return response.HealthCheckResult{Name: name, Error: err.Error()}
	}
	return response.HealthCheckResult{Name: name, Healthy: true}
}
