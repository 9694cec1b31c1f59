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

type PreferenceRepository interface {
	Upsert(ctx context.Context, pref *entity.TravelPreference) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TravelPreference, error)
}

type preferenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPreferenceRepository(db database.PgxIface, log *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "preference")),
	}
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *entity.TravelPreference) error {
	query := `
		INSERT INTO travel_preferences (id, user_id, preferred_type, budget_per_day, group_size, interests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET preferred_type = EXCLUDED.preferred_type,
		    budget_per_day = EXCLUDED.budget_per_day,
		    group_size = EXCLUDED.group_size,
		    interests = EXCLUDED.interests,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		pref.ID,
		pref.UserID,
		pref.PreferredType,
		pref.BudgetPerDay,
		pref.GroupSize,
		pref.Interests,
		pref.CreatedAt,
		pref.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert travel preferences",
			zap.Error(err),
			zap.String("user_id", pref.UserID.String()),
		)
		return fmt.Errorf("upsert preferences for user %s: %w", pref.UserID.String(), err)
	}

	return nil
}

func (r *preferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TravelPreference, error) {
	query := `
		SELECT id, user_id, preferred_type, budget_per_day, group_size, interests, created_at, updated_at
		FROM travel_preferences
		WHERE user_id = $1
	`

	var pref entity.TravelPreference
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&pref.ID,
		&pref.UserID,
		&pref.PreferredType,
		&pref.BudgetPerDay,
		&pref.GroupSize,
		&pref.Interests,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find preferences by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find preferences for user %s: %w", userID.String(), err)
	}

	return &pref, nil
}
