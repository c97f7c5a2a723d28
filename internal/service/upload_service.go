package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"odyssey/internal/config"
	"odyssey/internal/models"
	"odyssey/internal/observability"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// StagingDirName is the directory under the public dir holding uncommitted uploads.
	StagingDirName = ".staging"
	// DefaultExtension is used when neither the filename nor the content type yields one.
	DefaultExtension = ".jpg"
)

// Upload kinds, used as metric labels.
const (
	KindMoment      = "moment"
	KindBlog        = "blog"
	KindGallery     = "gallery"
	KindDestination = "destination"
)

var extensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// FileInput is an uploaded file as received from a multipart form.
type FileInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadInput describes a file to stage into a public folder.
type UploadInput struct {
	// Field names the form field, used in validation messages.
	Field string
	Kind  string
	// Folder is a slash-separated path relative to the public dir, e.g. "albums/kozhikode".
	Folder string
	File   FileInput
}

// UploadService writes uploads in two phases: Stage puts the bytes in a
// private staging dir, Commit moves them into the public tree.
type UploadService struct {
	publicDir  string
	stagingDir string
	maxBytes   int64
	stagingTTL time.Duration
	now        func() time.Time
}

// NewUploadService builds an UploadService rooted at cfg.PublicDir.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		publicDir:  cfg.PublicDir,
		stagingDir: filepath.Join(cfg.PublicDir, StagingDirName),
		maxBytes:   cfg.UploadMaxSizeBytes(),
		stagingTTL: time.Duration(cfg.UploadStagingTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// StagedUpload is a file written to the staging dir but not yet public.
type StagedUpload struct {
	svc    *UploadService
	kind   string
	folder string
	name   string
	size   int64
}

// Stage validates the payload and writes it to the staging dir.
func (s *UploadService) Stage(ctx context.Context, in UploadInput) (*StagedUpload, error) {
	_, span := observability.Tracer.Start(ctx, "UploadService.Stage")
	defer span.End()

	if len(in.File.Content) == 0 {
		return nil, models.NewValidationError(in.Field + " is required")
	}
	if int64(len(in.File.Content)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("%s is too large (max %dMB)", in.Field, s.maxBytes/(1024*1024)))
	}
	if !isSafeFolder(in.Folder) {
		return nil, models.NewInternalError(fmt.Errorf("unsafe upload folder %q", in.Folder))
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ResolveExtension(in.File.Filename, in.File.ContentType))
	span.SetAttributes(
		attribute.String("upload.kind", in.Kind),
		attribute.String("upload.folder", in.Folder),
		attribute.Int("upload.size", len(in.File.Content)),
	)

	if err := writeBytesToFile(filepath.Join(s.stagingDir, name), in.File.Content); err != nil {
		span.RecordError(err)
		return nil, models.NewInternalError(fmt.Errorf("stage upload: %w", err))
	}

	return &StagedUpload{
		svc:    s,
		kind:   in.Kind,
		folder: in.Folder,
		name:   name,
		size:   int64(len(in.File.Content)),
	}, nil
}

// Commit moves the staged file into its public folder and returns its URL path.
func (u *StagedUpload) Commit() (string, error) {
	dst := filepath.Join(u.svc.publicDir, filepath.FromSlash(u.folder), u.name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	if err := os.Rename(u.stagedPath(), dst); err != nil {
		return "", fmt.Errorf("commit upload: %w", err)
	}
	observability.RecordUpload(u.kind, u.size)
	return "/" + path.Join(u.folder, u.name), nil
}

// Discard removes the staged file. It is safe to call after a failed Commit.
func (u *StagedUpload) Discard() {
	if err := os.Remove(u.stagedPath()); err == nil {
		observability.UploadsDiscarded.WithLabelValues("request_failed").Inc()
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: failed to discard staged upload %s: %v", u.name, err)
	}
}

func (u *StagedUpload) stagedPath() string {
	return filepath.Join(u.svc.stagingDir, u.name)
}

// Sweep deletes staged files older than the staging TTL and reports how many were removed.
func (s *UploadService) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.stagingDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read staging dir: %w", err)
	}

	cutoff := now.Add(-s.stagingTTL)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.stagingDir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("WARNING: failed to sweep staged upload %s: %v", e.Name(), err)
			continue
		}
		removed++
	}
	if removed > 0 {
		observability.UploadsDiscarded.WithLabelValues("expired").Add(float64(removed))
	}
	return removed, nil
}

// StartJanitor runs Sweep on schedule until ctx is cancelled.
func (s *UploadService) StartJanitor(ctx context.Context, schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		n, err := s.Sweep(time.Now())
		if err != nil {
			log.Printf("upload janitor: %v", err)
			return
		}
		if n > 0 {
			log.Printf("upload janitor removed %d stale staged uploads", n)
		}
	}); err != nil {
		return fmt.Errorf("schedule upload janitor %q: %w", schedule, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}

// ResolveExtension picks a file extension from the original filename, then the
// content type, then DefaultExtension.
func ResolveExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); extensionPattern.MatchString(ext) {
		return ext
	}
	if ext := extensionFromContentType(contentType); extensionPattern.MatchString(ext) {
		return ext
	}
	return DefaultExtension
}

func extensionFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || subtype == "" {
		return ""
	}
	if subtype == "jpeg" {
		return ".jpg"
	}
	return "." + subtype
}

// isSafeFolder accepts clean, relative, slash-separated paths outside the staging dir.
func isSafeFolder(folder string) bool {
	if folder == "" || strings.Contains(folder, `\`) || path.IsAbs(folder) || path.Clean(folder) != folder {
		return false
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == "" || seg == "." || seg == ".." || seg == StagingDirName {
			return false
		}
	}
	return true
}

func writeBytesToFile(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o640)
}
