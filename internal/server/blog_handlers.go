package server

import (
	"odyssey/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createBlogForm struct {
	Title   string `form:"title" validate:"required"`
	Excerpt string `form:"excerpt" validate:"required"`
	Tag     string `form:"tag" validate:"required"`
}

// GetBlogs handles GET /api/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	return c.JSON(s.blogService.List(c.UserContext()))
}

// CreateBlog handles POST /api/blogs (multipart form with an "image" file).
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	body, err := multipartForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	form := createBlogForm{
		Title:   formValue(c, "title"),
		Excerpt: formValue(c, "excerpt"),
		Tag:     formValue(c, "tag"),
	}
	if err := validateForm(form); err != nil {
		return respondServiceError(c, err)
	}

	image, err := readFormFile(body, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	entry, err := s.blogService.Create(c.UserContext(), service.CreateBlogInput{
		Title:   form.Title,
		Excerpt: form.Excerpt,
		Tag:     form.Tag,
		Image:   image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}
