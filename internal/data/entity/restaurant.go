package entity

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	Base
	PartnerID   uuid.UUID `db:"partner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Location    string    `db:"location"`
	Cuisine     string    `db:"cuisine"`
	MediaRefs   []string  `db:"media_refs"`
	IsActive    bool      `db:"is_active"`
}

type RestaurantTable struct {
	BaseSimple
	RestaurantID uuid.UUID `db:"restaurant_id"`
	Label        string    `db:"label"`
	Seats        int       `db:"seats"`
}

type TableReservation struct {
	Base
	TableID    uuid.UUID     `db:"table_id"`
	UserID     uuid.UUID     `db:"user_id"`
	ReservedAt time.Time     `db:"reserved_at"`
	Guests     int           `db:"guests"`
	Status     BookingStatus `db:"status"`
}
