package server

import (
	"odyssey/internal/models"
	"odyssey/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	homePostPreview = 6
	homeBlogPreview = 2
)

// HomeResponse is the landing page feed.
type HomeResponse struct {
	Posts      []models.Post               `json:"posts"`
	Blogs      []models.BlogEntry          `json:"blogs"`
	Albums     []models.DestinationSummary `json:"albums"`
	StoryCount int                         `json:"storyCount"`
}

// GetHome handles GET /api/home
func (s *Server) GetHome(c *fiber.Ctx) error {
	ctx := c.UserContext()
	posts := s.postService.List(ctx)
	blogs := s.blogService.List(ctx)

	return c.JSON(HomeResponse{
		Posts:      lo.Slice(posts, 0, homePostPreview),
		Blogs:      lo.Slice(blogs, 0, homeBlogPreview),
		Albums:     service.Summarize(posts),
		StoryCount: len(posts),
	})
}
