package server

import (
	"odyssey/internal/models"
	"odyssey/internal/service"

	"github.com/gofiber/fiber/v2"
)

// createPostForm lists the moment form fields in the order they are validated.
type createPostForm struct {
	Traveler    string `form:"traveler" validate:"required"`
	Title       string `form:"title" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Description string `form:"description" validate:"required"`
	TravelDate  string `form:"travelDate" validate:"required,datetime=2006-01-02"`
	Mood        string `form:"mood" validate:"required,mood"`
	Weather     string `form:"weather" validate:"required"`
	Tags        string `form:"tags"`
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	return c.JSON(s.postService.List(c.UserContext()))
}

// CreatePost handles POST /api/posts (multipart form with a "photo" file).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	body, err := multipartForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	form := createPostForm{
		Traveler:    formValue(c, "traveler"),
		Title:       formValue(c, "title"),
		Location:    formValue(c, "location"),
		Description: formValue(c, "description"),
		TravelDate:  formValue(c, "travelDate"),
		Mood:        formValue(c, "mood"),
		Weather:     formValue(c, "weather"),
		Tags:        c.FormValue("tags"),
	}
	if err := validateForm(form); err != nil {
		return respondServiceError(c, err)
	}

	photo, err := readFormFile(body, "photo")
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		Traveler:    form.Traveler,
		Title:       form.Title,
		Location:    form.Location,
		Description: form.Description,
		TravelDate:  form.TravelDate,
		Tags:        parseTags(form.Tags),
		Mood:        models.Mood(form.Mood),
		Weather:     form.Weather,
		Photo:       photo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
