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

// BlogRepository is an append-only store of blog entries.
type BlogRepository interface {
	Create(ctx context.Context, in models.BlogFields) models.BlogEntry
	List(ctx context.Context) []models.BlogEntry
}

type blogRepository struct {
	mu      sync.RWMutex
	entries []models.BlogEntry
	now     func() time.Time
	logger  *observability.RepoLogger
}

// NewBlogRepository creates an in-memory BlogRepository.
func NewBlogRepository(now func() time.Time, seed ...models.BlogEntry) BlogRepository {
	if now == nil {
		now = time.Now
	}
	r := &blogRepository{
		entries: slices.Clone(seed),
		now:     now,
		logger:  observability.NewRepoLogger("blogs"),
	}
	if r.entries == nil {
		r.entries = []models.BlogEntry{}
	}
	observability.StoreEntities.WithLabelValues("blogs").Set(float64(len(r.entries)))
	return r
}

func (r *blogRepository) Create(ctx context.Context, in models.BlogFields) models.BlogEntry {
	entry := models.BlogEntry{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Tag:       in.Tag,
		ImageURL:  in.ImageURL,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	r.entries = slices.Insert(r.entries, 0, entry)
	count := len(r.entries)
	r.mu.Unlock()

	observability.StoreEntities.WithLabelValues("blogs").Set(float64(count))
	r.logger.LogCreate(ctx, slog.String("id", entry.ID), slog.String("tag", entry.Tag))
	return entry
}

func (r *blogRepository) List(ctx context.Context) []models.BlogEntry {
	r.mu.RLock()
	out := slices.Clone(r.entries)
	r.mu.RUnlock()

	sortNewestFirst(out, func(e models.BlogEntry) time.Time { return e.CreatedAt })
	r.logger.LogRead(ctx, slog.Int("count", len(out)))
	return out
}
