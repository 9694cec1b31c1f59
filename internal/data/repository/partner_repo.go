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

type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type partnerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPartnerRepository(db database.PgxIface, log *zap.Logger) PartnerRepository {
	return &partnerRepository{
		db:  db,
		log: log.With(zap.String("repository", "partner")),
	}
}

const partnerColumns = `id, user_id, business_name, business_type, description, is_verified, is_active, created_at, updated_at`

func scanPartner(row pgx.Row) (*entity.Partner, error) {
	var partner entity.Partner
	err := row.Scan(
		&partner.ID,
		&partner.UserID,
		&partner.BusinessName,
		&partner.BusinessType,
		&partner.Description,
		&partner.IsVerified,
		&partner.IsActive,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) Create(ctx context.Context, partner *entity.Partner) error {
	query := `
		INSERT INTO partners (id, user_id, business_name, business_type, description, is_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		partner.ID,
		partner.UserID,
		partner.BusinessName,
		partner.BusinessType,
		partner.Description,
		partner.IsVerified,
		partner.IsActive,
		partner.CreatedAt,
		partner.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create partner",
			zap.Error(err),
			zap.String("user_id", partner.UserID.String()),
		)
		return fmt.Errorf("create partner for user %s: %w", partner.UserID.String(), err)
	}

	return nil
}

func (r *partnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1 AND deleted_at IS NULL`

	partner, err := scanPartner(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find partner by ID",
			zap.Error(err),
			zap.String("partner_id", id.String()),
		)
		return nil, fmt.Errorf("find partner by ID %s: %w", id.String(), err)
	}

	return partner, nil
}

func (r *partnerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE user_id = $1 AND deleted_at IS NULL`

	partner, err := scanPartner(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.log.Error("Failed to find partner by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find partner by user ID %s: %w", userID.String(), err)
	}

	return partner, nil
}

func (r *partnerRepository) Update(ctx context.Context, partner *entity.Partner) error {
	query := `
		UPDATE partners
		SET business_name = $2, business_type = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		partner.ID,
		partner.BusinessName,
		partner.BusinessType,
		partner.Description,
		partner.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update partner",
			zap.Error(err),
			zap.String("partner_id", partner.ID.String()),
		)
		return fmt.Errorf("update partner %s: %w", partner.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("partner %s not found", partner.ID.String())
	}

	return nil
}

func (r *partnerRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE partners SET is_verified = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		r.log.Error("Failed to set partner verified flag",
			zap.Error(err),
			zap.String("partner_id", id.String()),
		)
		return fmt.Errorf("set partner %s verified=%t: %w", id.String(), verified, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("partner %s not found", id.String())
	}

	return nil
}

func (r *partnerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE partners SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set partner active flag",
			zap.Error(err),
			zap.String("partner_id", id.String()),
		)
		return fmt.Errorf("set partner %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("partner %s not found", id.String())
	}

	return nil
}
