package service

import (
	"context"
	"strings"
	"time"

	"odyssey/internal/models"
	"odyssey/internal/observability"
	"odyssey/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Upload targets accepted by PhotoService.
const (
	UploadTypeGallery     = "gallery"
	UploadTypeDestination = "destination"
)

const (
	galleryLocation = "Gallery"
	adminTraveler   = "Admin"
)

// PhotoService handles admin photo drops into the gallery or an existing destination.
type PhotoService struct {
	posts        repository.PostRepository
	destinations *DestinationService
	uploads      *UploadService
	now          func() time.Time
}

type UploadPhotoInput struct {
	UploadType      string
	DestinationSlug string
	Image           FileInput
}

func NewPhotoService(posts repository.PostRepository, destinations *DestinationService, uploads *UploadService) *PhotoService {
	return &PhotoService{posts: posts, destinations: destinations, uploads: uploads, now: time.Now}
}

// Upload stores the image and records it as an admin moment.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (models.Post, error) {
	ctx, span := observability.Tracer.Start(ctx, "PhotoService.Upload")
	defer span.End()

	if len(in.Image.Content) == 0 {
		return models.Post{}, models.NewValidationError("image is required")
	}

	location := galleryLocation
	folder := "albums/gallery"
	kind := KindGallery
	description := "Uploaded photo to gallery"

	if in.UploadType == UploadTypeDestination {
		key := strings.TrimSpace(in.DestinationSlug)
		if key == "" {
			return models.Post{}, models.NewValidationError("destinationSlug is required when uploading to destination")
		}
		destination, ok := s.destinations.FindBySlug(ctx, key)
		if !ok {
			return models.Post{}, models.NewNotFoundError("Destination not found")
		}
		location = destination.Location
		folder = "albums/" + destination.Slug
		kind = KindDestination
		description = "Uploaded photo to " + location
	}
	span.SetAttributes(attribute.String("upload.folder", folder))

	photoURL, err := stageAndCommit(ctx, s.uploads, UploadInput{
		Field:  "image",
		Kind:   kind,
		Folder: folder,
		File:   in.Image,
	})
	if err != nil {
		span.RecordError(err)
		return models.Post{}, err
	}

	return s.posts.Create(ctx, models.PostFields{
		Traveler:    adminTraveler,
		Title:       "Photo from " + location,
		Location:    location,
		Description: description,
		PhotoURL:    photoURL,
		TravelDate:  s.now().UTC().Format(time.DateOnly),
		Tags:        []string{},
		Mood:        models.MoodNature,
		Weather:     "Uploaded via admin",
	}), nil
}
