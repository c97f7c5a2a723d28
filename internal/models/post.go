// Package models contains data structures for the application's domain models.
package models

import (
	"slices"
	"time"
)

// Mood is the vibe a traveler attaches to a moment.
type Mood string

// Moods accepted for a moment.
const (
	MoodRelaxed Mood = "relaxed"
	MoodThrill  Mood = "thrill"
	MoodCulture Mood = "culture"
	MoodFoodie  Mood = "foodie"
	MoodNature  Mood = "nature"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{MoodRelaxed, MoodThrill, MoodCulture, MoodFoodie, MoodNature}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	return slices.Contains(Moods, m)
}

// Post is a single travel moment: a photo plus the traveler's notes.
// ID and CreatedAt are assigned by the repository and never change.
type Post struct {
	ID          string    `json:"id"`
	Traveler    string    `json:"traveler"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	TravelDate  string    `json:"travelDate"`
	CreatedAt   time.Time `json:"createdAt"`
	Tags        []string  `json:"tags"`
	Mood        Mood      `json:"mood"`
	Weather     string    `json:"weather"`
}

// PostFields is everything about a Post that the caller supplies.
type PostFields struct {
	Traveler    string
	Title       string
	Location    string
	Description string
	PhotoURL    string
	TravelDate  string
	Tags        []string
	Mood        Mood
	Weather     string
}

// Clone returns a copy of p that shares no memory with it.
func (p Post) Clone() Post {
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
