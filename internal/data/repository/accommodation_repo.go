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

type AccommodationRepository interface {
	Create(ctx context.Context, acc *entity.Accommodation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error)
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Accommodation, error)
	FindAvailable(ctx context.Context, limit, offset int) ([]*entity.Accommodation, error)
	CountAvailable(ctx context.Context) (int64, error)
	FindFeatured(ctx context.Context) ([]*entity.Accommodation, error)
	Update(ctx context.Context, acc *entity.Accommodation) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accommodationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccommodationRepository(db database.PgxIface, log *zap.Logger) AccommodationRepository {
	return &accommodationRepository{
		db:  db,
		log: log.With(zap.String("repository", "accommodation")),
	}
}

const accommodationColumns = `id, partner_id, title, description, location, price_per_night, max_guests, bedrooms, media_refs, is_available, is_featured, created_at, updated_at`

func scanAccommodation(row pgx.Row) (*entity.Accommodation, error) {
	var acc entity.Accommodation
	err := row.Scan(
		&acc.ID,
		&acc.PartnerID,
		&acc.Title,
		&acc.Description,
		&acc.Location,
		&acc.PricePerNight,
		&acc.MaxGuests,
		&acc.Bedrooms,
		&acc.MediaRefs,
		&acc.IsAvailable,
		&acc.IsFeatured,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accommodationRepository) Create(ctx context.Context, acc *entity.Accommodation) error {
	query := `
		INSERT INTO accommodations (id, partner_id, title, description, location, price_per_night, max_guests, bedrooms, media_refs, is_available, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		acc.ID,
		acc.PartnerID,
		acc.Title,
		acc.Description,
		acc.Location,
		acc.PricePerNight,
		acc.MaxGuests,
		acc.Bedrooms,
		acc.MediaRefs,
		acc.IsAvailable,
		acc.IsFeatured,
		acc.CreatedAt,
		acc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create accommodation",
			zap.Error(err),
			zap.String("partner_id", acc.PartnerID.String()),
			zap.String("title", acc.Title),
		)
		return fmt.Errorf("create accommodation %s: %w", acc.Title, err)
	}

	return nil
}

func (r *accommodationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = $1 AND deleted_at IS NULL`

	acc, err := scanAccommodation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find accommodation by ID",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return nil, fmt.Errorf("find accommodation by ID %s: %w", id.String(), err)
	}

	return acc, nil
}

func (r *accommodationRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE partner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, partnerID)
	if err != nil {
		r.log.Error("Failed to find accommodations by partner",
			zap.Error(err),
			zap.String("partner_id", partnerID.String()),
		)
		return nil, fmt.Errorf("find accommodations for partner %s: %w", partnerID.String(), err)
	}
	defer rows.Close()

	return collectAccommodations(rows, r.log)
}

func (r *accommodationRepository) FindAvailable(ctx context.Context, limit, offset int) ([]*entity.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE is_available = TRUE AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find available accommodations", zap.Error(err))
		return nil, fmt.Errorf("find available accommodations: %w", err)
	}
	defer rows.Close()

	return collectAccommodations(rows, r.log)
}

func (r *accommodationRepository) CountAvailable(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM accommodations WHERE is_available = TRUE AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count available accommodations", zap.Error(err))
		return 0, fmt.Errorf("count available accommodations: %w", err)
	}

	return count, nil
}

func (r *accommodationRepository) FindFeatured(ctx context.Context) ([]*entity.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE is_featured = TRUE AND is_available = TRUE AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find featured accommodations", zap.Error(err))
		return nil, fmt.Errorf("find featured accommodations: %w", err)
	}
	defer rows.Close()

	return collectAccommodations(rows, r.log)
}

func (r *accommodationRepository) Update(ctx context.Context, acc *entity.Accommodation) error {
	query := `
		UPDATE accommodations
		SET title = $2, description = $3, location = $4, price_per_night = $5,
		    max_guests = $6, bedrooms = $7, media_refs = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		acc.ID,
		acc.Title,
		acc.Description,
		acc.Location,
		acc.PricePerNight,
		acc.MaxGuests,
		acc.Bedrooms,
		acc.MediaRefs,
		acc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update accommodation",
			zap.Error(err),
			zap.String("accommodation_id", acc.ID.String()),
		)
		return fmt.Errorf("update accommodation %s: %w", acc.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation %s not found", acc.ID.String())
	}

	return nil
}

func (r *accommodationRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return r.setFlag(ctx, id, "is_featured", featured)
}

func (r *accommodationRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return r.setFlag(ctx, id, "is_available", available)
}

func (r *accommodationRepository) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	query := `UPDATE accommodations SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		r.log.Error("Failed to set accommodation flag",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
			zap.String("column", column),
		)
		return fmt.Errorf("set accommodation %s %s=%t: %w", id.String(), column, value, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation %s not found", id.String())
	}

	return nil
}

func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accommodations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete accommodation",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return fmt.Errorf("delete accommodation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation %s not found", id.String())
	}

	r.log.Info("Accommodation deleted", zap.String("accommodation_id", id.String()))
	return nil
}

func collectAccommodations(rows pgx.Rows, log *zap.Logger) ([]*entity.Accommodation, error) {
	var accs []*entity.Accommodation
	for rows.Next() {
		var acc entity.Accommodation
		err := rows.Scan(
			&acc.ID,
			&acc.PartnerID,
			&acc.Title,
			&acc.Description,
			&acc.Location,
			&acc.PricePerNight,
			&acc.MaxGuests,
			&acc.Bedrooms,
			&acc.MediaRefs,
			&acc.IsAvailable,
			&acc.IsFeatured,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan accommodation row", zap.Error(err))
			return nil, fmt.Errorf("scan accommodation row: %w", err)
		}
		accs = append(accs, &acc)
	}

	return accs, nil
}
