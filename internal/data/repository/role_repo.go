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

type RoleRepository interface {
	Grant(ctx context.Context, grant *entity.RoleGrant) error
	Revoke(ctx context.Context, userID uuid.UUID, role string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RoleGrant, error)
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) Grant(ctx context.Context, grant *entity.RoleGrant) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, is_master, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, role) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		grant.ID,
		grant.UserID,
		grant.Role,
		grant.IsMaster,
		grant.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to grant role",
			zap.Error(err),
			zap.String("user_id", grant.UserID.String()),
			zap.String("role", grant.Role),
		)
		return fmt.Errorf("grant role %s to %s: %w", grant.Role, grant.UserID.String(), err)
	}

	return nil
}

func (r *roleRepository) Revoke(ctx context.Context, userID uuid.UUID, role string) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`

	result, err := r.db.Exec(ctx, query, userID, role)
	if err != nil {
		r.log.Error("Failed to revoke role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", role),
		)
		return fmt.Errorf("revoke role %s from %s: %w", role, userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("role %s not granted to user %s", role, userID.String())
	}

	return nil
}

// FindByUserID returns the user's grants ordered oldest first, so the first
// row is the primary role.
func (r *roleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RoleGrant, error) {
	query := `
		SELECT id, user_id, role, is_master, created_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find roles by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find roles for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var grants []*entity.RoleGrant
	for rows.Next() {
		var grant entity.RoleGrant
		err := rows.Scan(
			&grant.ID,
			&grant.UserID,
			&grant.Role,
			&grant.IsMaster,
			&grant.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan role grant row", zap.Error(err))
			return nil, fmt.Errorf("scan role grant row: %w", err)
		}
		grants = append(grants, &grant)
	}

	return grants, nil
}

func (r *roleRepository) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	query := `SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2`

	var one int
	err := r.db.QueryRow(ctx, query, userID, role).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", role),
		)
		return false, fmt.Errorf("check role %s for user %s: %w", role, userID.String(), err)
	}

	return true, nil
}
