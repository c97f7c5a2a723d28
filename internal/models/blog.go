package models

import "time"

// BlogEntry is a short story shown on the blog page.
type BlogEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Tag       string    `json:"tag"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogFields is everything about a BlogEntry that the caller supplies.
type BlogFields struct {
	Title    string
	Excerpt  string
	Tag      string
	ImageURL string
}
