package service

import (
	"context"

	"odyssey/internal/models"
	"odyssey/internal/observability"
	"odyssey/internal/repository"
)

// BlogService publishes blog entries.
type BlogService struct {
	blogs   repository.BlogRepository
	uploads *UploadService
}

type CreateBlogInput struct {
	Title   string
	Excerpt string
	Tag     string
	Image   FileInput
}

func NewBlogService(blogs repository.BlogRepository, uploads *UploadService) *BlogService {
	return &BlogService{blogs: blogs, uploads: uploads}
}

func (s *BlogService) List(ctx context.Context) []models.BlogEntry {
	return s.blogs.List(ctx)
}

// Create stores the cover image under blogs/ and appends the entry.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput) (models.BlogEntry, error) {
	ctx, span := observability.Tracer.Start(ctx, "BlogService.Create")
	defer span.End()

	imageURL, err := stageAndCommit(ctx, s.uploads, UploadInput{
		Field:  "image",
		Kind:   KindBlog,
		Folder: "blogs",
		File:   in.Image,
	})
	if err != nil {
		span.RecordError(err)
		return models.BlogEntry{}, err
	}

	return s.blogs.Create(ctx, models.BlogFields{
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Tag:      in.Tag,
		ImageURL: imageURL,
	}), nil
}
