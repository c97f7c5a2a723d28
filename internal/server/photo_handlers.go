package server

import (
	"odyssey/internal/models"
	"odyssey/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PhotoUploadResponse is the API response after an admin photo upload.
type PhotoUploadResponse struct {
	Success bool        `json:"success"`
	Post    models.Post `json:"post"`
}

type uploadPhotoForm struct {
	UploadType      string `form:"uploadType" validate:"omitempty,oneof=gallery destination"`
	DestinationSlug string `form:"destinationSlug"`
}

// UploadPhoto handles POST /api/photos (multipart form with an "image" file).
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	body, err := multipartForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	form := uploadPhotoForm{
		UploadType:      formValue(c, "uploadType"),
		DestinationSlug: formValue(c, "destinationSlug"),
	}
	if err := validateForm(form); err != nil {
		return respondServiceError(c, err)
	}

	image, err := readFormFile(body, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.photoService.Upload(c.UserContext(), service.UploadPhotoInput{
		UploadType:      form.UploadType,
		DestinationSlug: form.DestinationSlug,
		Image:           image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(PhotoUploadResponse{Success: true, Post: post})
}
