package domain

import "testing"

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Confirmed", "Cancelled", "Completed"} {
		if _, ok := ParseBookingStatus(valid); !ok {
			t.Errorf("ParseBookingStatus(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "pending", "Rejected", "confirmed "} {
		if _, ok := ParseBookingStatus(invalid); ok {
			t.Errorf("ParseBookingStatus(%q) = true, want false", invalid)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingPending, BookingPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if BookingPending.IsTerminal() || BookingConfirmed.IsTerminal() {
		t.Error("Pending and Confirmed must not be terminal")
	}
	if !BookingCancelled.IsTerminal() || !BookingCompleted.IsTerminal() {
		t.Error("Cancelled and Completed must be terminal")
	}
}

func TestBookingIsOwner(t *testing.T) {
	b := &Booking{Email: "A@x.com"}
	if !b.IsOwner("a@x.com") {
		t.Error("owner check should be case-insensitive")
	}
	if b.IsOwner("b@x.com") {
		t.Error("different email must not own the booking")
	}
}
