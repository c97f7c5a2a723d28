package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"odyssey/internal/middleware"
	"odyssey/internal/models"
	"odyssey/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form names so messages match what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return models.Mood(fl.Field().String()).Valid()
	})

	return v
}

// validateForm returns a validation AppError for the first failing field, in
// struct field order.
func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return models.NewValidationError(formatFieldError(verrs[0]))
	}
	return models.NewInternalError(err)
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "mood":
		moods := lo.Map(models.Moods, func(m models.Mood, _ int) string { return string(m) })
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(moods, ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// mapServiceError converts service-layer error codes to HTTP status codes.
func mapServiceError(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes err with the status its code maps to and logs
// anything that is not a client error.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	if status >= fiber.StatusInternalServerError {
		logError(c, err)
	}
	return models.RespondWithError(c, status, err)
}

func logError(c *fiber.Ctx, err error) {
	middleware.Logger.ErrorContext(c.UserContext(), "request error", "error", err, "path", c.Path())
}

// formValue returns the trimmed text value of a form field.
func formValue(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// multipartForm parses the request body once. Requests that are not
// multipart yield an empty form, so text fields still come from FormValue
// and every file part reads as missing. A multipart body that fails to parse
// is a validation error.
func multipartForm(c *fiber.Ctx) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err == nil {
		return form, nil
	}
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return &multipart.Form{}, nil
	}
	return nil, models.NewValidationError("Invalid multipart form body")
}

// readFormFile reads an uploaded file part. A missing part yields an empty
// FileInput, which the upload service rejects as "<field> is required".
func readFormFile(form *multipart.Form, field string) (service.FileInput, error) {
	parts := form.File[field]
	if len(parts) == 0 {
		return service.FileInput{}, nil
	}
	file := parts[0]

	src, err := file.Open()
	if err != nil {
		return service.FileInput{}, models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return service.FileInput{}, models.NewValidationError("Unable to read uploaded file")
	}

	return service.FileInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// parseTags splits a comma-separated list, trimming entries and dropping empty ones.
func parseTags(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	}))
}
