package entity

import "github.com/google/uuid"

type Accommodation struct {
	Base
	PartnerID     uuid.UUID `db:"partner_id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	Location      string    `db:"location"`
	PricePerNight float64   `db:"price_per_night"`
	MaxGuests     int       `db:"max_guests"`
	Bedrooms      int       `db:"bedrooms"`
	MediaRefs     []string  `db:"media_refs"`
	IsAvailable   bool      `db:"is_available"`
	IsFeatured    bool      `db:"is_featured"`
}
