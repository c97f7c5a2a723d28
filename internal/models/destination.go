package models

// DestinationSummary is a derived album: every Post whose location maps to Slug.
// It is recomputed from the post store on each read and never stored.
type DestinationSummary struct {
	Slug       string   `json:"slug"`
	Location   string   `json:"location"`
	CoverURL   string   `json:"coverUrl"`
	EntryCount int      `json:"entryCount"`
	Travelers  []string `json:"travelers"`
	Mood       Mood     `json:"mood,omitempty"`
}
