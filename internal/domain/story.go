package domain

import "time"

type Story struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	AuthorName  string    `json:"authorName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	GuideID     *int64    `json:"guideId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type StoryUpdateReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	NewImages   []string `json:"newImages"`
}
