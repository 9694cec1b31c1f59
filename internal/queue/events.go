// Package queue defines the booking lifecycle events published to the
// message broker and the publisher that delivers them.
package queue

// Queue names. Durable, one per lifecycle transition.
const (
	QueueBookingCreated   = "booking.created"
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingEvent carries enough context for downstream consumers (mail,
// analytics, partner dashboards) to act without querying the database.
type BookingEvent struct {
	BookingID     string  `json:"booking_id"`
	ReferenceCode string  `json:"reference_code"`
	UserID        string  `json:"user_id"`
	ItemType      string  `json:"item_type"`
	ItemID        string  `json:"item_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Guests        int     `json:"guests"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	OccurredAt    string  `json:"occurred_at"`
}
