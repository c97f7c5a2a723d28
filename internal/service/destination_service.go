package service

import (
	"context"
	"slices"
	"time"

	"odyssey/internal/models"
	"odyssey/internal/observability"
	"odyssey/internal/repository"
	"odyssey/internal/slug"

	"github.com/samber/lo"
)

// DestinationService derives destination albums from the post store.
type DestinationService struct {
	posts repository.PostRepository
}

func NewDestinationService(posts repository.PostRepository) *DestinationService {
	return &DestinationService{posts: posts}
}

// List summarizes every post currently stored.
func (s *DestinationService) List(ctx context.Context) []models.DestinationSummary {
	_, span := observability.Tracer.Start(ctx, "DestinationService.List")
	defer span.End()

	summaries := Summarize(s.posts.List(ctx))
	observability.DestinationsTotal.Set(float64(len(summaries)))
	return summaries
}

// FindBySlug recomputes the summaries and returns the one keyed by slug.
func (s *DestinationService) FindBySlug(ctx context.Context, key string) (models.DestinationSummary, bool) {
	return lo.Find(s.List(ctx), func(d models.DestinationSummary) bool {
		return d.Slug == key
	})
}

// PostsForSlug returns the posts grouped under key, newest first.
func (s *DestinationService) PostsForSlug(ctx context.Context, key string) []models.Post {
	return lo.Filter(s.posts.List(ctx), func(p models.Post, _ int) bool {
		return GroupKey(p) == key
	})
}

// GroupKey is the album key of a post: its location slug, or its own id
// when the location has no usable characters. Two such posts never share
// an album.
func GroupKey(p models.Post) string {
	return slug.Key(p.Location, p.ID)
}

type destinationAcc struct {
	summary models.DestinationSummary
	latest  time.Time
}

// Summarize groups posts by GroupKey.
//
// Each album takes its location, cover and mood from its most recently
// created post; when creation times are equal the post met first in posts
// wins. Albums are ordered by their latest post, newest first, and equal
// albums keep first-seen order. Travelers are distinct, in first-seen order.
func Summarize(posts []models.Post) []models.DestinationSummary {
	accs := make([]*destinationAcc, 0)
	byKey := make(map[string]*destinationAcc)

	for _, p := range posts {
		key := GroupKey(p)
		acc, ok := byKey[key]
		if !ok {
			acc = &destinationAcc{
				summary: models.DestinationSummary{
					Slug:      key,
					Location:  p.Location,
					CoverURL:  p.PhotoURL,
					Travelers: []string{},
					Mood:      p.Mood,
				},
				latest: p.CreatedAt,
			}
			byKey[key] = acc
			accs = append(accs, acc)
		} else if p.CreatedAt.After(acc.latest) {
			acc.latest = p.CreatedAt
			acc.summary.Location = p.Location
			acc.summary.CoverURL = p.PhotoURL
			acc.summary.Mood = p.Mood
		}

		acc.summary.EntryCount++
		if !lo.Contains(acc.summary.Travelers, p.Traveler) {
			acc.summary.Travelers = append(acc.summary.Travelers, p.Traveler)
		}
	}

	slices.SortStableFunc(accs, func(a, b *destinationAcc) int {
		return b.latest.Compare(a.latest)
	})

	return lo.Map(accs, func(acc *destinationAcc, _ int) models.DestinationSummary {
		return acc.summary
	})
}
