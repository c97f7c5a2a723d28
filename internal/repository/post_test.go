package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"odyssey/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

func TestPostRepository_CreateAssignsIdentity(t *testing.T) {
	start := time.Date(2025, 2, 11, 9, 0, 0, 0, time.UTC)
	repo := NewPostRepository(stepClock(start, time.Minute))

	p := repo.Create(context.Background(), models.PostFields{
		Traveler: "Aaliya Rahman",
		Title:    "Kozhikode Beach Glow",
		Location: "Kozhikode",
		PhotoURL: "/albums/kozhikode/1.jpg",
		Tags:     []string{"sunset", "beach"},
		Mood:     models.MoodRelaxed,
	})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, start, p.CreatedAt)
	assert.Equal(t, []string{"sunset", "beach"}, p.Tags)
	assert.Equal(t, "Kozhikode", p.Location)
}

func TestPostRepository_ListNewestFirstWithUniqueIDs(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewPostRepository(stepClock(start, time.Second))

	created := make([]models.Post, 0, 5)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		created = append(created, repo.Create(ctx, models.PostFields{Title: title}))
	}

	list := repo.List(ctx)
	require.Len(t, list, len(created))

	seen := map[string]bool{}
	for i, p := range list {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, created[len(created)-1-i].ID, p.ID)
		if i > 0 {
			assert.False(t, p.CreatedAt.After(list[i-1].CreatedAt))
		}
	}
}

func TestPostRepository_ListSortsSeedsByCreatedAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	older := models.Post{ID: "older", CreatedAt: now.Add(-30 * 24 * time.Hour)}
	newer := models.Post{ID: "newer", CreatedAt: now.Add(-24 * 24 * time.Hour)}
	repo := NewPostRepository(func() time.Time { return now }, older, newer)

	fresh := repo.Create(context.Background(), models.PostFields{Title: "fresh"})

	ids := []string{}
	for _, p := range repo.List(context.Background()) {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{fresh.ID, "newer", "older"}, ids)
}

func TestPostRepository_EqualTimestampsListMostRecentAppendFirst(t *testing.T) {
	frozen := time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)
	repo := NewPostRepository(func() time.Time { return frozen })

	first := repo.Create(context.Background(), models.PostFields{Title: "first"})
	second := repo.Create(context.Background(), models.PostFields{Title: "second"})

	list := repo.List(context.Background())
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestPostRepository_ListIsDefensiveCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(nil)
	in := []string{"river"}
	created := repo.Create(ctx, models.PostFields{Title: "x", Tags: in})

	in[0] = "mutated-input"
	created.Tags[0] = "mutated-return"

	list := repo.List(ctx)
	list[0].Title = "changed"
	list[0].Tags[0] = "changed"
	_ = append(list, models.Post{ID: "intruder"})

	again := repo.List(ctx)
	require.Len(t, again, 1)
	assert.Equal(t, "x", again[0].Title)
	assert.Equal(t, []string{"river"}, again[0].Tags)
}

func TestPostRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Create(ctx, models.PostFields{Title: "parallel"})
			_ = repo.List(ctx)
		}()
	}
	wg.Wait()

	assert.Len(t, repo.List(ctx), 50)
}
