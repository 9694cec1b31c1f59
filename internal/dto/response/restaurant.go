package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type RestaurantResponse struct {
	ID          string    `json:"id"`
	PartnerID   string    `json:"partner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Location    string    `json:"location"`
	Cuisine     string    `json:"cuisine"`
	MediaRefs   []string  `json:"media_refs,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type TableResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Label        string `json:"label"`
	Seats        int    `json:"seats"`
}

type ReservationResponse struct {
	ID         string               `json:"id"`
	TableID    string               `json:"table_id"`
	UserID     string               `json:"user_id"`
	ReservedAt time.Time            `json:"reserved_at"`
	Guests     int                  `json:"guests"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func RestaurantToResponse(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:          r.ID.String(),
		PartnerID:   r.PartnerID.String(),
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Cuisine:     r.Cuisine,
		MediaRefs:   r.MediaRefs,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func RestaurantsToResponse(list []*entity.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, 0, len(list))
	for _, r := range list {
		out = append(out, RestaurantToResponse(r))
	}
	return out
}

func TableToResponse(t *entity.RestaurantTable) TableResponse {
	return TableResponse{
		ID:           t.ID.String(),
		RestaurantID: t.RestaurantID.String(),
		Label:        t.Label,
		Seats:        t.Seats,
	}
}

func TablesToResponse(list []*entity.RestaurantTable) []TableResponse {
	out := make([]TableResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TableToResponse(t))
	}
	return out
}

func ReservationToResponse(r *entity.TableReservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID.String(),
		TableID:    r.TableID.String(),
		UserID:     r.UserID.String(),
		ReservedAt: r.ReservedAt,
		Guests:     r.Guests,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

func ReservationsToResponse(list []*entity.TableReservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ReservationToResponse(r))
	}
	return out
}
