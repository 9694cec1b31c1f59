package entity

import "testing"

func TestBookingTransitionMatrix(t *testing.T) {
	cases := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusPending, BookingStatusPending, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionToRejectsInvalidChange(t *testing.T) {
	booking := &Booking{Status: BookingStatusCancelled}

	if err := booking.TransitionTo(BookingStatusConfirmed); err == nil {
		t.Fatal("cancelled booking must stay cancelled")
	}
	if booking.Status != BookingStatusCancelled {
		t.Fatalf("status mutated to %s on a rejected transition", booking.Status)
	}
}

func TestTransitionToAppliesValidChange(t *testing.T) {
	booking := &Booking{Status: BookingStatusPending}

	if err := booking.TransitionTo(BookingStatusConfirmed); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if booking.Status != BookingStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", booking.Status)
	}
}

func TestValidItemType(t *testing.T) {
	for _, it := range []ItemType{ItemAccommodation, ItemTour, ItemEvent, ItemVehicle, ItemProduct} {
		if !ValidItemType(it) {
			t.Fatalf("%s should be valid", it)
		}
	}
	if ValidItemType("flight") {
		t.Fatal("unknown item type accepted")
	}
}
