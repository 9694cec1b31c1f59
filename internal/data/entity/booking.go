package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ItemType identifies which kind of listing a booking reserves.
type ItemType string

const (
	ItemAccommodation ItemType = "accommodation"
	ItemTour          ItemType = "tour"
	ItemEvent         ItemType = "event"
	ItemVehicle       ItemType = "vehicle"
	ItemProduct       ItemType = "product"
)

func ValidItemType(t ItemType) bool {
	switch t {
	case ItemAccommodation, ItemTour, ItemEvent, ItemVehicle, ItemProduct:
		return true
	}
	return false
}

type Booking struct {
	Base
	ReferenceCode string        `db:"reference_code"`
	UserID        uuid.UUID     `db:"user_id"`
	ItemType      ItemType      `db:"item_type"`
	ItemID        uuid.UUID     `db:"item_id"`
	CheckIn       time.Time     `db:"check_in"`
	CheckOut      time.Time     `db:"check_out"`
	Guests        int           `db:"guests"`
	TotalPrice    float64       `db:"total_price"`
	Status        BookingStatus `db:"status"`
}

// validBookingTransitions is the authoritative lifecycle. cancelled is
// terminal: nothing ever transitions out of it.
var validBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// CanTransition reports whether the status change is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range validBookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo applies the status change after validating it.
func (b *Booking) TransitionTo(status BookingStatus) error {
	if !CanTransition(b.Status, status) {
		return fmt.Errorf("cannot transition booking from %s to %s", b.Status, status)
	}
	b.Status = status
	return nil
}
