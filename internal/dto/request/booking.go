package request

type CreateBookingRequest struct {
	// Optional client-picked idempotency code; retries reuse it so the
	// unique constraint turns a duplicate insert into the original booking.
	ReferenceCode string `json:"reference_code" validate:"omitempty,min=8,max=40"`

	ItemType   string  `json:"item_type" validate:"required,oneof=accommodation tour event vehicle product"`
	ItemID     string  `json:"item_id" validate:"required,uuid4"`
	CheckIn    string  `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string  `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests     int     `json:"guests" validate:"required,min=1"`
	TotalPrice float64 `json:"total_price" validate:"required,min=0"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type CreateEventBookingRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
	Spots   int    `json:"spots" validate:"required,min=1"`
}
