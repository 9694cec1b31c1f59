package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	ReferenceCode string               `json:"reference_code"`
	UserID        string               `json:"user_id"`
	ItemType      entity.ItemType      `json:"item_type"`
	ItemID        string               `json:"item_id"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	Guests        int                  `json:"guests"`
	TotalPrice    float64              `json:"total_price"`
	Status        entity.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type EventBookingResponse struct {
	ID         string               `json:"id"`
	EventID    string               `json:"event_id"`
	UserID     string               `json:"user_id"`
	Spots      int                  `json:"spots"`
	TotalPrice float64              `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		ReferenceCode: booking.ReferenceCode,
		UserID:        booking.UserID.String(),
		ItemType:      booking.ItemType,
		ItemID:        booking.ItemID.String(),
		CheckIn:       booking.CheckIn.Format("2006-01-02"),
		CheckOut:      booking.CheckOut.Format("2006-01-02"),
		Guests:        booking.Guests,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		CreatedAt:     booking.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, BookingToResponse(booking))
	}
	return out
}

func EventBookingToResponse(booking *entity.EventBooking) EventBookingResponse {
	return EventBookingResponse{
		ID:         booking.ID.String(),
		EventID:    booking.EventID.String(),
		UserID:     booking.UserID.String(),
		Spots:      booking.Spots,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}
