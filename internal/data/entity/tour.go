package entity

import "github.com/google/uuid"

type Tour struct {
	Base
	PartnerID     uuid.UUID `db:"partner_id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	Location      string    `db:"location"`
	PricePerSeat  float64   `db:"price_per_seat"`
	DurationHours int       `db:"duration_hours"`
	MaxGroupSize  int       `db:"max_group_size"`
	MediaRefs     []string  `db:"media_refs"`
	IsAvailable   bool      `db:"is_available"`
}
