package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"odyssey/internal/models"
	"odyssey/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExtension(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        string
	}{
		{"beach.png", "image/jpeg", ".png"},
		{"BEACH.JPG", "", ".jpg"},
		{"blob", "image/jpeg", ".jpg"},
		{"blob", "image/webp", ".webp"},
		{"blob", "image/png; charset=binary", ".png"},
		{"blob", "image/svg+xml", DefaultExtension},
		{"blob", "", DefaultExtension},
		{"blob", "garbage", DefaultExtension},
		{"weird.p n g", "image/gif", ".gif"},
	}
	for _, tt := range tests {
		t.Run(tt.filename+"|"+tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExtension(tt.filename, tt.contentType))
		})
	}
}

func TestUploadService_StageAndCommit(t *testing.T) {
	cfg := testutil.Config(t)
	svc := NewUploadService(cfg)
	content := testutil.TinyPNG(t, 8, 8)

	staged, err := svc.Stage(context.Background(), UploadInput{
		Field:  "photo",
		Kind:   KindMoment,
		Folder: "albums/kozhikode",
		File:   FileInput{Filename: "sunset.png", ContentType: "image/png", Content: content},
	})
	require.NoError(t, err)

	stagedFiles, err := os.ReadDir(filepath.Join(cfg.PublicDir, StagingDirName))
	require.NoError(t, err)
	require.Len(t, stagedFiles, 1)

	url, err := staged.Commit()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/albums/kozhikode/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := filepath.Base(url)
	millis, _, ok := strings.Cut(name, "-")
	require.True(t, ok)
	assert.Len(t, millis, 13)

	written, err := os.ReadFile(filepath.Join(cfg.PublicDir, filepath.FromSlash(url)))
	require.NoError(t, err)
	assert.Equal(t, content, written)

	stagedFiles, err = os.ReadDir(filepath.Join(cfg.PublicDir, StagingDirName))
	require.NoError(t, err)
	assert.Empty(t, stagedFiles)

	staged.Discard()
}

func TestUploadService_StageRejectsEmptyAndOversized(t *testing.T) {
	cfg := testutil.Config(t)
	svc := NewUploadService(cfg)

	_, err := svc.Stage(context.Background(), UploadInput{Field: "photo", Folder: "albums/x"})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	assert.Equal(t, "photo is required", err.Error())

	big := make([]byte, cfg.UploadMaxSizeBytes()+1)
	_, err = svc.Stage(context.Background(), UploadInput{Field: "image", Folder: "blogs", File: FileInput{Content: big}})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	assert.Contains(t, err.Error(), "image is too large")
}

func TestUploadService_StageRejectsUnsafeFolders(t *testing.T) {
	svc := NewUploadService(testutil.Config(t))
	for _, folder := range []string{"", "/etc", "../up", "albums/../../x", "albums//x", ".staging", `albums\x`, "albums/."} {
		_, err := svc.Stage(context.Background(), UploadInput{Field: "photo", Folder: folder, File: FileInput{Content: []byte{1}}})
		require.Error(t, err, folder)
		assert.Equal(t, models.CodeInternal, models.ErrorCode(err), folder)
	}
}

func TestUploadService_DiscardRemovesStagedFile(t *testing.T) {
	cfg := testutil.Config(t)
	svc := NewUploadService(cfg)

	staged, err := svc.Stage(context.Background(), UploadInput{Field: "image", Folder: "blogs", File: FileInput{Content: []byte("x")}})
	require.NoError(t, err)
	staged.Discard()

	entries, err := os.ReadDir(filepath.Join(cfg.PublicDir, StagingDirName))
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = os.Stat(filepath.Join(cfg.PublicDir, "blogs"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadService_SweepRemovesOnlyStaleFiles(t *testing.T) {
	cfg := testutil.Config(t)
	svc := NewUploadService(cfg)
	stagingDir := filepath.Join(cfg.PublicDir, StagingDirName)

	removed, err := svc.Sweep(time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)

	require.NoError(t, os.MkdirAll(stagingDir, 0o750))
	stale := filepath.Join(stagingDir, "stale.jpg")
	fresh := filepath.Join(stagingDir, "fresh.jpg")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o600))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err = svc.Sweep(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestUploadService_StartJanitorRejectsBadSchedule(t *testing.T) {
	svc := NewUploadService(testutil.Config(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, svc.StartJanitor(ctx, "every now and then"))
	assert.NoError(t, svc.StartJanitor(ctx, "@every 1h"))
}
