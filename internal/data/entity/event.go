package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	PartnerID      uuid.UUID `db:"partner_id"`
	Title          string    `db:"title"`
	Description    *string   `db:"description"`
	Venue          string    `db:"venue"`
	StartsAt       time.Time `db:"starts_at"`
	EndsAt         time.Time `db:"ends_at"`
	TicketPrice    float64   `db:"ticket_price"`
	TotalSpots     int       `db:"total_spots"`
	AvailableSpots int       `db:"available_spots"`
	MediaRefs      []string  `db:"media_refs"`
	IsAvailable    bool      `db:"is_available"`
}

// EventBooking reserves spots at an event. Spot accounting lives on the
// event row; cancelling restores the reserved spots.
type EventBooking struct {
	Base
	EventID    uuid.UUID     `db:"event_id"`
	UserID     uuid.UUID     `db:"user_id"`
	Spots      int           `db:"spots"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
