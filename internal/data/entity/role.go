package entity

import "github.com/google/uuid"

// RoleGrant is a row of the user_roles table. A user may hold several
// grants; the first by created_at is treated as the primary role. IsMaster
// marks the capability that unlocks every permission regardless of role.
type RoleGrant struct {
	BaseSimple
	UserID   uuid.UUID `db:"user_id"`
	Role     string    `db:"role"`
	IsMaster bool      `db:"is_master"`
}
