package request

type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Venue       string   `json:"venue" validate:"required,min=2,max=200"`
	StartsAt    string   `json:"starts_at" validate:"required"`
	EndsAt      string   `json:"ends_at" validate:"required"`
	TicketPrice float64  `json:"ticket_price" validate:"required,min=0"`
	TotalSpots  int      `json:"total_spots" validate:"required,min=1"`
	MediaRefs   []string `json:"media_refs,omitempty"`
}
