// Package seed provides the demo content loaded into fresh stores.
package seed

import (
	"time"

	"odyssey/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

const day = 24 * time.Hour

// Posts returns the demo moments relative to now.
func Posts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID:          uuid.NewString(),
			Traveler:    "Aaliya Rahman",
			Title:       "Kozhikode Beach Glow",
			Location:    "Kozhikode",
			Description: "Low tide at Kozhikode beach turned the shoreline into a mirror. Fishermen were wrapping up for the day while the sky went full sherbet.",
			PhotoURL:    "/albums/kozhikode/beypore-sunset.jpg",
			TravelDate:  "2025-02-11",
			CreatedAt:   now.Add(-24 * day).UTC(),
			Tags:        []string{"sunset", "beach", "india"},
			Mood:        models.MoodRelaxed,
			Weather:     "Humid 28°C, salty breeze",
		},
		{
			ID:          uuid.NewString(),
			Traveler:    "Dev Patel",
			Title:       "Kallayi River Lookout",
			Location:    "Kozhikode",
			Description: "Climbed the laterite cliffs near Kallayi for a dawn vantage point. The coconut groves below were waking up with temple bells.",
			PhotoURL:    "/albums/kozhikode/cliff-lookout.jpg",
			TravelDate:  "2025-01-28",
			CreatedAt:   now.Add(-30 * day).UTC(),
			Tags:        []string{"river", "cliffs", "kerala"},
			Mood:        models.MoodNature,
			Weather:     "Golden 23°C, light mist",
		},
	}
}

// Blogs returns the demo blog entries relative to now.
func Blogs(now time.Time) []models.BlogEntry {
	return []models.BlogEntry{
		{
			ID:        uuid.NewString(),
			Title:     "How to capture golden hour on the road",
			Excerpt:   "Dial in composition fast, even when you are juggling backpacks and lightning-fast departures.",
			Tag:       "Fieldcraft",
			ImageURL:  "/blog-1.jpg",
			CreatedAt: now.Add(-6 * day).UTC(),
		},
		{
			ID:        uuid.NewString(),
			Title:     "Five micro-itineraries for remote workers",
			Excerpt:   "Blend coastline strolls and co-working hubs so you can work by day and wander by dusk.",
			Tag:       "Remote Life",
			ImageURL:  "/blog-2.jpg",
			CreatedAt: now.Add(-11 * day).UTC(),
		},
		{
			ID:        uuid.NewString(),
			Title:     "Street food photo etiquette 101",
			Excerpt:   "Keep lines moving, support vendors, and still snag the steamy shot that tells the story.",
			Tag:       "Culture",
			ImageURL:  "/blog-3.jpg",
			CreatedAt: now.Add(-15 * day).UTC(),
		},
	}
}

// FakeMoments generates n moments spread over the 90 days before now.
// A fixed seed gives reproducible content.
func FakeMoments(n int, now time.Time, seed int64) []models.Post {
	f := gofakeit.New(seed)
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		createdAt := now.Add(-time.Duration(f.Number(1, 90*24*60)) * time.Minute).UTC()
		city := f.City()
		posts = append(posts, models.Post{
			ID:          uuid.NewString(),
			Traveler:    f.Name(),
			Title:       f.Sentence(f.Number(3, 6)),
			Location:    city,
			Description: f.Paragraph(1, 3, 12, " "),
			PhotoURL:    "/albums/placeholder/" + f.UUID() + ".jpg",
			TravelDate:  createdAt.Add(-time.Duration(f.Number(0, 72)) * time.Hour).Format(time.DateOnly),
			CreatedAt:   createdAt,
			Tags:        []string{f.Noun(), f.Adjective()},
			Mood:        models.Moods[f.Number(0, len(models.Moods)-1)],
			Weather:     f.Sentence(3),
		})
	}
	return posts
}
