package service

import (
	"context"
	"fmt"
	"time"

	"odyssey/internal/models"
	"odyssey/internal/observability"
	"odyssey/internal/repository"
	"odyssey/internal/slug"

	"go.opentelemetry.io/otel/attribute"
)

// PostService creates travel moments from form submissions.
type PostService struct {
	posts   repository.PostRepository
	uploads *UploadService
	now     func() time.Time
}

// CreatePostInput carries validated form fields plus the photo.
type CreatePostInput struct {
	Traveler    string
	Title       string
	Location    string
	Description string
	TravelDate  string
	Tags        []string
	Mood        models.Mood
	Weather     string
	Photo       FileInput
}

func NewPostService(posts repository.PostRepository, uploads *UploadService) *PostService {
	return &PostService{posts: posts, uploads: uploads, now: time.Now}
}

// List returns every moment, newest first.
func (s *PostService) List(ctx context.Context) []models.Post {
	return s.posts.List(ctx)
}

// Create stores the photo under albums/<location slug> and appends the moment.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (models.Post, error) {
	ctx, span := observability.Tracer.Start(ctx, "PostService.Create")
	defer span.End()

	folderSlug := slug.Make(in.Location)
	if folderSlug == "" {
		folderSlug = fmt.Sprintf("place-%d", s.now().UnixMilli())
	}
	span.SetAttributes(attribute.String("destination.slug", folderSlug))

	photoURL, err := stageAndCommit(ctx, s.uploads, UploadInput{
		Field:  "photo",
		Kind:   KindMoment,
		Folder: "albums/" + folderSlug,
		File:   in.Photo,
	})
	if err != nil {
		span.RecordError(err)
		return models.Post{}, err
	}

	return s.posts.Create(ctx, models.PostFields{
		Traveler:    in.Traveler,
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		PhotoURL:    photoURL,
		TravelDate:  in.TravelDate,
		Tags:        in.Tags,
		Mood:        in.Mood,
		Weather:     in.Weather,
	}), nil
}

// stageAndCommit writes the upload and publishes it, discarding the staged
// file if publishing fails.
func stageAndCommit(ctx context.Context, uploads *UploadService, in UploadInput) (string, error) {
	staged, err := uploads.Stage(ctx, in)
	if err != nil {
		return "", err
	}
	url, err := staged.Commit()
	if err != nil {
		staged.Discard()
		return "", models.NewInternalError(err)
	}
	return url, nil
}
