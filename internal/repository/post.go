// Package repository holds the in-memory stores that own the application's entities.
package repository

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"odyssey/internal/models"
	"odyssey/internal/observability"

	"github.com/google/uuid"
)

// PostRepository is an append-only store of travel moments.
type PostRepository interface {
	// Create assigns an id and creation time, stores the post and returns it.
	Create(ctx context.Context, in models.PostFields) models.Post
	// List returns a copy of every post, newest first.
	List(ctx context.Context) []models.Post
}

type postRepository struct {
	mu     sync.RWMutex
	posts  []models.Post
	now    func() time.Time
	logger *observability.RepoLogger
}

// NewPostRepository creates an in-memory PostRepository. now defaults to
// time.Now; seed posts are stored as given.
func NewPostRepository(now func() time.Time, seed ...models.Post) PostRepository {
	if now == nil {
		now = time.Now
	}
	r := &postRepository{
		posts:  make([]models.Post, 0, len(seed)),
		now:    now,
		logger: observability.NewRepoLogger("posts"),
	}
	for _, p := range seed {
		r.posts = append(r.posts, p.Clone())
	}
	observability.StoreEntities.WithLabelValues("posts").Set(float64(len(r.posts)))
	return r
}

func (r *postRepository) Create(ctx context.Context, in models.PostFields) models.Post {
	post := models.Post{
		ID:          uuid.NewString(),
		Traveler:    in.Traveler,
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		TravelDate:  in.TravelDate,
		CreatedAt:   r.now().UTC(),
		Tags:        in.Tags,
		Mood:        in.Mood,
		Weather:     in.Weather,
	}.Clone()

	r.mu.Lock()
	r.posts = slices.Insert(r.posts, 0, post)
	count := len(r.posts)
	r.mu.Unlock()

	observability.StoreEntities.WithLabelValues("posts").Set(float64(count))
	r.logger.LogCreate(ctx, slog.String("id", post.ID), slog.String("location", post.Location))
	return post.Clone()
}

func (r *postRepository) List(ctx context.Context) []models.Post {
	r.mu.RLock()
	out := make([]models.Post, len(r.posts))
	for i, p := range r.posts {
		out[i] = p.Clone()
	}
	r.mu.RUnlock()

	sortNewestFirst(out, func(p models.Post) time.Time { return p.CreatedAt })
	r.logger.LogRead(ctx, slog.Int("count", len(out)))
	return out
}

// sortNewestFirst orders items by creation time, descending. Items with
// equal timestamps keep their stored order, which is most recent append first.
func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
}
