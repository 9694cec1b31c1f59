package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type AccommodationResponse struct {
	ID            string    `json:"id"`
	PartnerID     string    `json:"partner_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	Bedrooms      int       `json:"bedrooms"`
	MediaRefs     []string  `json:"media_refs,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
}

type TourResponse struct {
	ID            string    `json:"id"`
	PartnerID     string    `json:"partner_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Location      string    `json:"location"`
	PricePerSeat  float64   `json:"price_per_seat"`
	DurationHours int       `json:"duration_hours"`
	MaxGroupSize  int       `json:"max_group_size"`
	MediaRefs     []string  `json:"media_refs,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
}

type VehicleResponse struct {
	ID          string                 `json:"id"`
	PartnerID   string                 `json:"partner_id"`
	Name        string                 `json:"name"`
	Category    entity.VehicleCategory `json:"category"`
	Seats       int                    `json:"seats"`
	PricePerDay float64                `json:"price_per_day"`
	MediaRefs   []string               `json:"media_refs,omitempty"`
	IsAvailable bool                   `json:"is_available"`
	CreatedAt   time.Time              `json:"created_at"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	PartnerID   string    `json:"partner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	MediaRefs   []string  `json:"media_refs,omitempty"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converters
func AccommodationToResponse(a *entity.Accommodation) AccommodationResponse {
	return AccommodationResponse{
		ID:            a.ID.String(),
		PartnerID:     a.PartnerID.String(),
		Title:         a.Title,
		Description:   a.Description,
		Location:      a.Location,
		PricePerNight: a.PricePerNight,
		MaxGuests:     a.MaxGuests,
		Bedrooms:      a.Bedrooms,
		MediaRefs:     a.MediaRefs,
		IsAvailable:   a.IsAvailable,
		IsFeatured:    a.IsFeatured,
		CreatedAt:     a.CreatedAt,
	}
}

func AccommodationsToResponse(list []*entity.Accommodation) []AccommodationResponse {
	out := make([]AccommodationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AccommodationToResponse(a))
	}
	return out
}

func TourToResponse(t *entity.Tour) TourResponse {
	return TourResponse{
		ID:            t.ID.String(),
		PartnerID:     t.PartnerID.String(),
		Title:         t.Title,
		Description:   t.Description,
		Location:      t.Location,
		PricePerSeat:  t.PricePerSeat,
		DurationHours: t.DurationHours,
		MaxGroupSize:  t.MaxGroupSize,
		MediaRefs:     t.MediaRefs,
		IsAvailable:   t.IsAvailable,
		CreatedAt:     t.CreatedAt,
	}
}

func ToursToResponse(list []*entity.Tour) []TourResponse {
	out := make([]TourResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TourToResponse(t))
	}
	return out
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID.String(),
		PartnerID:   v.PartnerID.String(),
		Name:        v.Name,
		Category:    v.Category,
		Seats:       v.Seats,
		PricePerDay: v.PricePerDay,
		MediaRefs:   v.MediaRefs,
		IsAvailable: v.IsAvailable,
		CreatedAt:   v.CreatedAt,
	}
}

func VehiclesToResponse(list []*entity.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, VehicleToResponse(v))
	}
	return out
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		PartnerID:   p.PartnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		MediaRefs:   p.MediaRefs,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
	}
}

func ProductsToResponse(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductToResponse(p))
	}
	return out
}
