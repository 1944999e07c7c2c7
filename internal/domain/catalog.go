package domain

import "time"

type TourGuide struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	PhotoURL  string         `json:"photoURL"`
	Specialty string         `json:"specialty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type TourPackage struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	TourType  string         `json:"tourType"`
	Price     float64        `json:"price"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// GuideProfile is the detail view for a single guide: the record plus the
// stories they are featured in.
type GuideProfile struct {
	Guide   *TourGuide `json:"guide"`
	Stories []Story    `json:"stories"`
}
