package entity

import "github.com/google/uuid"

type Product struct {
	Base
	PartnerID   uuid.UUID `db:"partner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"`
	Stock       int       `db:"stock"`
	MediaRefs   []string  `db:"media_refs"`
	IsAvailable bool      `db:"is_available"`
}
