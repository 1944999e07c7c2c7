package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// transitions is the allowed status graph. Cancelled and Completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type Booking struct {
	ID          int64          `json:"id"`
	TouristName string         `json:"touristName"`
	Email       string         `json:"email"`
	GuideName   string         `json:"guideName"`
	PackageName string         `json:"packageName"`
	TourDate    time.Time      `json:"tourDate"`
	Price       float64        `json:"price"`
	Status      BookingStatus  `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type BookingCreateReq struct {
	TouristName string         `json:"touristName"`
	Email       string         `json:"email"`
	GuideName   string         `json:"guideName"`
	PackageName string         `json:"packageName"`
	TourDate    time.Time      `json:"tourDate"`
	Price       float64        `json:"price"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// IsOwner reports whether the given email owns this booking.
func (b *Booking) IsOwner(email string) bool {
	return strings.EqualFold(b.Email, email)
}
