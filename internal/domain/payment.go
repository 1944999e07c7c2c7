package domain

import "time"

type Payment struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	BookingID     *int64    `json:"bookingId,omitempty"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type EventRegistration struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminStats is the aggregate dashboard view.
type AdminStats struct {
	TotalPayment    float64 `json:"totalPayment"`
	TotalTourGuides int64   `json:"totalTourGuides"`
	TotalPackages   int64   `json:"totalPackages"`
	TotalClients    int64   `json:"totalClients"`
	TotalStories    int64   `json:"totalStories"`
}
