package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type EventResponse struct {
	ID             string    `json:"id"`
	PartnerID      string    `json:"partner_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Venue          string    `json:"venue"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	TicketPrice    float64   `json:"ticket_price"`
	TotalSpots     int       `json:"total_spots"`
	AvailableSpots int       `json:"available_spots"`
	MediaRefs      []string  `json:"media_refs,omitempty"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
}

func EventToResponse(e *entity.Event) EventResponse {
	return EventResponse{
		ID:             e.ID.String(),
		PartnerID:      e.PartnerID.String(),
		Title:          e.Title,
		Description:    e.Description,
		Venue:          e.Venue,
		StartsAt:       e.StartsAt,
		EndsAt:         e.EndsAt,
		TicketPrice:    e.TicketPrice,
		TotalSpots:     e.TotalSpots,
		AvailableSpots: e.AvailableSpots,
		MediaRefs:      e.MediaRefs,
		IsAvailable:    e.IsAvailable,
		CreatedAt:      e.CreatedAt,
	}
}

func EventsToResponse(list []*entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EventToResponse(e))
	}
	return out
}
