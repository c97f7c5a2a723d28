// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"odyssey/internal/config"
	"odyssey/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Config returns a valid test configuration with PublicDir in a temp dir.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                    "0",
		Env:                     "test",
		PublicDir:               t.TempDir(),
		UploadMaxSizeMB:         1,
		UploadStagingTTLMinutes: 30,
		UploadJanitorSchedule:   "@every 1m",
		AllowedOrigins:          "*",
		CreateRateLimit:         20,
		OTELExporter:            config.ExporterNone,
	}
}

// TinyPNG returns a valid PNG image of the given size.
func TinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// Moment builds a post at location created at createdAt, with other fields faked.
func Moment(location string, createdAt time.Time) models.Post {
	return models.Post{
		ID:          gofakeit.UUID(),
		Traveler:    gofakeit.Name(),
		Title:       gofakeit.Sentence(4),
		Location:    location,
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		PhotoURL:    "/albums/" + gofakeit.UUID() + ".jpg",
		TravelDate:  createdAt.Format(time.DateOnly),
		CreatedAt:   createdAt,
		Tags:        []string{gofakeit.Word(), gofakeit.Word()},
		Mood:        models.Moods[gofakeit.Number(0, len(models.Moods)-1)],
		Weather:     gofakeit.Sentence(3),
	}
}

// FormFile is a file part for MultipartBody.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// MultipartBody encodes fields and files as multipart/form-data and returns
// the body with its Content-Type header value.
func MultipartBody(t *testing.T, fields map[string]string, files ...FormFile) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}
