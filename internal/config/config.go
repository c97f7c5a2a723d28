// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Tracing exporters understood by observability.InitTracer.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                    string `mapstructure:"PORT"`
	Env                     string `mapstructure:"APP_ENV"`
	PublicDir               string `mapstructure:"PUBLIC_DIR"`
	UploadMaxSizeMB         int    `mapstructure:"UPLOAD_MAX_SIZE_MB"`
	UploadStagingTTLMinutes int    `mapstructure:"UPLOAD_STAGING_TTL_MINUTES"`
	UploadJanitorSchedule   string `mapstructure:"UPLOAD_JANITOR_SCHEDULE"`
	AllowedOrigins          string `mapstructure:"ALLOWED_ORIGINS"`
	RedisURL                string `mapstructure:"REDIS_URL"`
	CreateRateLimit         int    `mapstructure:"CREATE_RATE_LIMIT"`
	SeedDemoContent         bool   `mapstructure:"SEED_DEMO_CONTENT"`
	SeedFakeMoments         int    `mapstructure:"SEED_FAKE_MOMENTS"`
	OTELExporter            string `mapstructure:"OTEL_EXPORTER"`
	OTELEndpoint            string `mapstructure:"OTEL_ENDPOINT"`
	LogRepositoryOps        bool   `mapstructure:"LOG_REPOSITORY_OPS"`
}

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read profile config 'config.%s.yml': %w", env, err)
			}
			log.Printf("No profile-specific config for %s; using environment and defaults", env)
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PUBLIC_DIR", "./public")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 10)
	viper.SetDefault("UPLOAD_STAGING_TTL_MINUTES", 30)
	viper.SetDefault("UPLOAD_JANITOR_SCHEDULE", "@every 10m")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CREATE_RATE_LIMIT", 20)
	viper.SetDefault("SEED_DEMO_CONTENT", true)
	viper.SetDefault("SEED_FAKE_MOMENTS", 0)
	viper.SetDefault("OTEL_EXPORTER", ExporterNone)
	viper.SetDefault("OTEL_ENDPOINT", "")
	viper.SetDefault("LOG_REPOSITORY_OPS", true)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.OTELExporter = strings.ToLower(strings.TrimSpace(config.OTELExporter))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.PublicDir == "" {
		return errors.New("PUBLIC_DIR is required")
	}
	if c.UploadMaxSizeMB <= 0 {
		return errors.New("UPLOAD_MAX_SIZE_MB must be positive")
	}
	if c.UploadStagingTTLMinutes <= 0 {
		return errors.New("UPLOAD_STAGING_TTL_MINUTES must be positive")
	}
	if c.CreateRateLimit < 0 {
		return errors.New("CREATE_RATE_LIMIT must not be negative")
	}
	if c.SeedFakeMoments < 0 {
		return errors.New("SEED_FAKE_MOMENTS must not be negative")
	}

	switch c.OTELExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTELEndpoint == "" {
			return errors.New("OTEL_ENDPOINT is required when OTEL_EXPORTER is otlp")
		}
	default:
		return fmt.Errorf("unknown OTEL_EXPORTER %q", c.OTELExporter)
	}

	if c.IsProduction() && c.AllowedOrigins == "*" {
		log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// UploadMaxSizeBytes returns the per-file upload limit in bytes.
func (c *Config) UploadMaxSizeBytes() int64 {
	return int64(c.UploadMaxSizeMB) * 1024 * 1024
}
