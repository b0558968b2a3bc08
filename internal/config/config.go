// Package config loads the poster configuration from .env, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// DefaultPath is read when POSTER_CONFIG is unset. It may be absent.
const DefaultPath = "config/poster.yaml"

// Config holds every tunable of a run. Only the credentials are required.
type Config struct {
	Archive  ArchiveConfig  `yaml:"archive"`
	Variants VariantsConfig `yaml:"variants"`
	Image    ImageConfig    `yaml:"image"`
	Bluesky  BlueskyConfig  `yaml:"bluesky"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`

	// Warnings collects ignored values; they are logged once the logger exists.
	Warnings []string `yaml:"-"`
}

// ArchiveConfig locates the NASA feed and the public details page.
type ArchiveConfig struct {
	FeedURL       string `yaml:"feed_url"`
	DetailsURL    string `yaml:"details_url"`
	ExcludedMedia string `yaml:"excluded_media_type"`
}

// VariantsConfig holds the file-name markers used to pick a variant.
type VariantsConfig struct {
	Original   string `yaml:"original"`
	Thumbnail  string `yaml:"thumbnail"`
	JPEGSuffix string `yaml:"jpeg_suffix"`
}

// ImageConfig bounds what the fetcher accepts for upload.
type ImageConfig struct {
	MaxBytes   int64  `yaml:"max_bytes"`
	TypePrefix string `yaml:"type_prefix"`
}

// BlueskyConfig credentials come from the environment only.
type BlueskyConfig struct {
	Service  string `yaml:"service"`
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// HTTPConfig applies to every outbound request.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// LogConfig selects the minimum level and the output format.
type LogConfig struct {
	Level  log.Level `yaml:"level"`
	Format string    `yaml:"format"` // json or text
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		Archive: ArchiveConfig{
			FeedURL:       "https://images-assets.nasa.gov/recent.json",
			DetailsURL:    "https://images.nasa.gov/details/{nasa_id}",
			ExcludedMedia: string(domain.MediaAudio),
		},
		Variants: VariantsConfig{
			Original:   "~orig",
			Thumbnail:  "~thumb.jpg",
			JPEGSuffix: ".jpg",
		},
		Image: ImageConfig{
			MaxBytes:   1_000_000,
			TypePrefix: "image",
		},
		Bluesky: BlueskyConfig{
			Service: "https://bsky.social",
		},
		HTTP: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "nasa-poster",
		},
		Log: LogConfig{
			Level:  log.Info,
			Format: "json",
		},
	}
}

// Load reads .env from the working directory if present, then the YAML file
// named by POSTER_CONFIG (or DefaultPath), then environment overrides.
// An explicitly named YAML file must exist.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	path, explicit := os.LookupEnv("POSTER_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultPath, false
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// Credentials are used verbatim, surrounding spaces included.
	if v := os.Getenv("BLUESKY_USERNAME"); v != "" {
		c.Bluesky.Username = v
	}
	if v := os.Getenv("BLUESKY_PASSWORD"); v != "" {
		c.Bluesky.Password = v
	}
	setString(&c.Bluesky.Service, "BLUESKY_SERVICE")
	setString(&c.Archive.FeedURL, "NASA_FEED_URL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := c.Log.Level.UnmarshalText([]byte(v)); err != nil {
			c.Warnings = append(c.Warnings, fmt.Sprintf("invalid LOG_LEVEL %q, using %s", v, c.Log.Level))
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("invalid HTTP_TIMEOUT %q, using %s", v, c.HTTP.Timeout))
		} else {
			c.HTTP.Timeout = d
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks required and enumerated values.
func (c *Config) Validate() error {
	if c.Bluesky.Username == "" || c.Bluesky.Password == "" {
		return fmt.Errorf("%w: set BLUESKY_USERNAME and BLUESKY_PASSWORD", domain.ErrMissingCredentials)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q: want json or text", c.Log.Format)
	}
	if c.Image.MaxBytes <= 0 {
		return fmt.Errorf("image.max_bytes must be positive, got %d", c.Image.MaxBytes)
	}
	if !strings.Contains(c.Archive.DetailsURL, "{nasa_id}") {
		return fmt.Errorf("archive.details_url %q lacks the {nasa_id} placeholder", c.Archive.DetailsURL)
	}
	return nil
}
