package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds all tool settings, populated from environment variables.
// The CLI surface is just the input package and output path; everything
// tunable lives here so hosted-notebook users can keep a .env next to
// their data instead of remembering flags.
type Config struct {
	LogLevel  string
	LogFormat string

	// WorkDir is the root under which per-run extraction directories are
	// created. Empty means the system temp dir.
	WorkDir string

	MapZoom         int
	MarkerRadiusPx  int
	PopupMaxWidthPx int

	// S3-compatible storage settings, required only when the input package
	// is given as an s3:// URI.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	zoom, err := parseIntEnv("MAP_ZOOM", 18)
	if err != nil {
		return nil, err
	}

	markerRadius, err := parseIntEnv("MARKER_RADIUS_PX", 7)
	if err != nil {
		return nil, err
	}

	popupWidth, err := parseIntEnv("POPUP_MAX_WIDTH_PX", 300)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
		WorkDir:   os.Getenv("WORK_DIR"),

		MapZoom:         zoom,
		MarkerRadiusPx:  markerRadius,
		PopupMaxWidthPx: popupWidth,

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New(`LOG_FORMAT must be "json" or "text"`)
	}
	if cfg.MapZoom < 1 || cfg.MapZoom > 22 {
		return nil, errors.New("MAP_ZOOM must be between 1 and 22")
	}
	if cfg.MarkerRadiusPx < 1 {
		return nil, errors.New("MARKER_RADIUS_PX must be positive")
	}
	if cfg.PopupMaxWidthPx < 1 {
		return nil, errors.New("POPUP_MAX_WIDTH_PX must be positive")
	}

	return cfg, nil
}

// ObjectStoreConfigured reports whether the S3-compatible storage settings
// are complete enough to fetch s3:// inputs.
func (c *Config) ObjectStoreConfigured() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
