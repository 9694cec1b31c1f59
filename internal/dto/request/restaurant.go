package request

type CreateRestaurantRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location    string   `json:"location" validate:"required,min=2,max=200"`
	Cuisine     string   `json:"cuisine" validate:"required,min=2,max=100"`
	MediaRefs   []string `json:"media_refs,omitempty"`
}

type CreateTableRequest struct {
	Label string `json:"label" validate:"required,min=1,max=20"`
	Seats int    `json:"seats" validate:"required,min=1"`
}

type CreateReservationRequest struct {
	TableID    string `json:"table_id" validate:"required,uuid4"`
	ReservedAt string `json:"reserved_at" validate:"required"`
	Guests     int    `json:"guests" validate:"required,min=1"`
}
