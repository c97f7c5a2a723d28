package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                    "8375",
		Env:                     "development",
		PublicDir:               "./public",
		UploadMaxSizeMB:         10,
		UploadStagingTTLMinutes: 30,
		CreateRateLimit:         20,
		OTELExporter:            ExporterNone,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Defaults are valid", func(c *Config) {}, false},
		{"Empty port", func(c *Config) { c.Port = "" }, true},
		{"Empty public dir", func(c *Config) { c.PublicDir = "" }, true},
		{"Zero upload size", func(c *Config) { c.UploadMaxSizeMB = 0 }, true},
		{"Zero staging ttl", func(c *Config) { c.UploadStagingTTLMinutes = 0 }, true},
		{"Negative rate limit", func(c *Config) { c.CreateRateLimit = -1 }, true},
		{"Negative fake moments", func(c *Config) { c.SeedFakeMoments = -3 }, true},
		{"Stdout exporter", func(c *Config) { c.OTELExporter = ExporterStdout }, false},
		{"OTLP without endpoint", func(c *Config) { c.OTELExporter = ExporterOTLP }, true},
		{"OTLP with endpoint", func(c *Config) {
			c.OTELExporter = ExporterOTLP
			c.OTELEndpoint = "localhost:4318"
		}, false},
		{"Unknown exporter", func(c *Config) { c.OTELExporter = "zipkin" }, true},
		{"Production wildcard origins only warns", func(c *Config) {
			c.Env = "production"
			c.AllowedOrigins = "*"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_UploadMaxSizeBytes(t *testing.T) {
	c := validConfig()
	c.UploadMaxSizeMB = 3
	assert.Equal(t, int64(3*1024*1024), c.UploadMaxSizeBytes())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()

	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9100")
	t.Setenv("PUBLIC_DIR", "/srv/odyssey/public")
	t.Setenv("OTEL_EXPORTER", "  STDOUT ")
	t.Setenv("SEED_DEMO_CONTENT", "false")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9100", c.Port)
	assert.Equal(t, "/srv/odyssey/public", c.PublicDir)
	assert.Equal(t, ExporterStdout, c.OTELExporter)
	assert.False(t, c.SeedDemoContent)
	assert.Equal(t, 10, c.UploadMaxSizeMB)
	assert.Equal(t, "@every 10m", c.UploadJanitorSchedule)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("UPLOAD_MAX_SIZE_MB")

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("APP_ENV", "test")
	require.NoError(t, os.WriteFile(".env", []byte("UPLOAD_MAX_SIZE_MB=4\n"), 0o600))

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, c.UploadMaxSizeMB)
}
