package server

import (
	"strings"

	"odyssey/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DestinationDetailResponse is one album with its moments, newest first.
type DestinationDetailResponse struct {
	Destination models.DestinationSummary `json:"destination"`
	Posts       []models.Post             `json:"posts"`
}

// GetDestinations handles GET /api/destinations
func (s *Server) GetDestinations(c *fiber.Ctx) error {
	return c.JSON(s.destinationService.List(c.UserContext()))
}

// GetDestination handles GET /api/destinations/:slug
func (s *Server) GetDestination(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("slug"))
	destination, ok := s.destinationService.FindBySlug(c.UserContext(), key)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Destination not found"))
	}

	return c.JSON(DestinationDetailResponse{
		Destination: destination,
		Posts:       s.destinationService.PostsForSlug(c.UserContext(), key),
	})
}
