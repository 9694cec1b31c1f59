package entity

import "github.com/google/uuid"

// TravelPreference is a per-user profile driving recommendations. One row
// per user, written with upsert semantics.
type TravelPreference struct {
	BaseNoDelete
	UserID        uuid.UUID `db:"user_id"`
	PreferredType ItemType  `db:"preferred_type"`
	BudgetPerDay  float64   `db:"budget_per_day"`
	GroupSize     int       `db:"group_size"`
	Interests     []string  `db:"interests"`
}
