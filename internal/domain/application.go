package domain

import "time"

// GuideApplication is keyed by email: one pending application per applicant,
// withdrawn or approved by deleting the row.
type GuideApplication struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Reason    string    `json:"reason"`
	CVLink    string    `json:"cvLink"`
	CreatedAt time.Time `json:"createdAt"`
}
