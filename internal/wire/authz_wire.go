package wire

import (
	"context"

	"tourism-booking/internal/authz"
	"tourism-booking/internal/data/repository"

	"github.com/google/uuid"
)

// roleStore adapts the role repository to the resolver's store interface.
type roleStore struct {
	roles repository.RoleRepository
}

func (s roleStore) FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]authz.Role, bool, error) {
	grants, err := s.roles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	roles := make([]authz.Role, 0, len(grants))
	master := false
	for _, grant := range grants {
		roles = append(roles, authz.Role(grant.Role))
		if grant.IsMaster {
			master = true
		}
	}

	return roles, master, nil
}

func (s roleStore) HasRole(ctx context.Context, userID uuid.UUID, role authz.Role) (bool, error) {
	return s.roles.HasRole(ctx, userID, string(role))
}
