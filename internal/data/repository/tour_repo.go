package repository

import (
	"context"
	"fmt"

	"tourism-booking/internal/data/entity"
	"tourism-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Tour, error)
	FindAvailable(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	Update(ctx context.Context, tour *entity.Tour) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, partner_id, title, description, location, price_per_seat, duration_hours, max_group_size, media_refs, is_available, created_at, updated_at`

func scanTour(row pgx.Row) (*entity.Tour, error) {
	var tour entity.Tour
	err := row.Scan(
		&tour.ID,
		&tour.PartnerID,
		&tour.Title,
		&tour.Description,
		&tour.Location,
		&tour.PricePerSeat,
		&tour.DurationHours,
		&tour.MaxGroupSize,
		&tour.MediaRefs,
		&tour.IsAvailable,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (id, partner_id, title, description, location, price_per_seat, duration_hours, max_group_size, media_refs, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.PartnerID,
		tour.Title,
		tour.Description,
		tour.Location,
		tour.PricePerSeat,
		tour.DurationHours,
		tour.MaxGroupSize,
		tour.MediaRefs,
		tour.IsAvailable,
		tour.CreatedAt,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("partner_id", tour.PartnerID.String()),
			zap.String("title", tour.Title),
		)
		return fmt.Errorf("create tour %s: %w", tour.Title, err)
	}

	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1 AND deleted_at IS NULL`

	tour, err := scanTour(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return tour, nil
}

func (r *tourRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE partner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, partnerID)
	if err != nil {
		r.log.Error("Failed to find tours by partner",
			zap.Error(err),
			zap.String("partner_id", partnerID.String()),
		)
		return nil, fmt.Errorf("find tours for partner %s: %w", partnerID.String(), err)
	}
	defer rows.Close()

	return collectTours(rows, r.log)
}

func (r *tourRepository) FindAvailable(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE is_available = TRUE AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find available tours", zap.Error(err))
		return nil, fmt.Errorf("find available tours: %w", err)
	}
	defer rows.Close()

	return collectTours(rows, r.log)
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	query := `
		UPDATE tours
		SET title = $2, description = $3, location = $4, price_per_seat = $5,
		    duration_hours = $6, max_group_size = $7, media_refs = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Title,
		tour.Description,
		tour.Location,
		tour.PricePerSeat,
		tour.DurationHours,
		tour.MaxGroupSize,
		tour.MediaRefs,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("update tour %s: %w", tour.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", tour.ID.String())
	}

	return nil
}

func (r *tourRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE tours SET is_available = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, available)
	if err != nil {
		r.log.Error("Failed to set tour availability",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("set tour %s available=%t: %w", id.String(), available, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", id.String())
	}

	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tours SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("delete tour %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", id.String())
	}

	return nil
}

func collectTours(rows pgx.Rows, log *zap.Logger) ([]*entity.Tour, error) {
	var tours []*entity.Tour
	for rows.Next() {
		var tour entity.Tour
		err := rows.Scan(
			&tour.ID,
			&tour.PartnerID,
			&tour.Title,
			&tour.Description,
			&tour.Location,
			&tour.PricePerSeat,
			&tour.DurationHours,
			&tour.MaxGroupSize,
			&tour.MediaRefs,
			&tour.IsAvailable,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, &tour)
	}

	return tours, nil
}
