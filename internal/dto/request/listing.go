package request

type CreateAccommodationRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location      string   `json:"location" validate:"required,min=2,max=200"`
	PricePerNight float64  `json:"price_per_night" validate:"required,min=0"`
	MaxGuests     int      `json:"max_guests" validate:"required,min=1"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0"`
	MediaRefs     []string `json:"media_refs,omitempty"`
}

type UpdateAccommodationRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location      string   `json:"location" validate:"required,min=2,max=200"`
	PricePerNight float64  `json:"price_per_night" validate:"required,min=0"`
	MaxGuests     int      `json:"max_guests" validate:"required,min=1"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0"`
	MediaRefs     []string `json:"media_refs,omitempty"`
}

type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type SetFeaturedRequest struct {
	IsFeatured bool `json:"is_featured"`
}

type CreateTourRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location      string   `json:"location" validate:"required,min=2,max=200"`
	PricePerSeat  float64  `json:"price_per_seat" validate:"required,min=0"`
	DurationHours int      `json:"duration_hours" validate:"required,min=1"`
	MaxGroupSize  int      `json:"max_group_size" validate:"required,min=1"`
	MediaRefs     []string `json:"media_refs,omitempty"`
}

type CreateVehicleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Category    string   `json:"category" validate:"required,oneof=car van scooter bicycle"`
	Seats       int      `json:"seats" validate:"required,min=1"`
	PricePerDay float64  `json:"price_per_day" validate:"required,min=0"`
	MediaRefs   []string `json:"media_refs,omitempty"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       float64  `json:"price" validate:"required,min=0"`
	Stock       int      `json:"stock" validate:"min=0"`
	MediaRefs   []string `json:"media_refs,omitempty"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}
