// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RenderConfig controls page rasterization and export.
type RenderConfig struct {
	FontDir     string
	Scale       float64
	Concurrency int
	OutputDir   string
	// Seed fixes exercise shuffling. Zero picks a time based seed.
	Seed    int64
	Timeout time.Duration
}

// StorageConfig locates the local database and the optional upload bucket.
type StorageConfig struct {
	DataDir  string
	S3Bucket string
	S3Prefix string
}

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig
	Render  RenderConfig
	Storage StorageConfig
}

// Load reads the given .env files, if present, and then the environment.
// Variables already set in the environment win over file values.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
	return FromEnv()
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("WORKSHEET_LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("WORKSHEET_LOG_PRETTY", "false")),
		File:       getEnv("WORKSHEET_LOG_FILE", ""),
		MaxSizeMB:  parseInt(getEnv("WORKSHEET_LOG_MAX_SIZE_MB", "20"), 20),
		MaxBackups: parseInt(getEnv("WORKSHEET_LOG_MAX_BACKUPS", "5"), 5),
		MaxAgeDays: parseInt(getEnv("WORKSHEET_LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("WORKSHEET_LOG_COMPRESS", "true")),
	}

	cfg.Render = RenderConfig{
		FontDir:     getEnv("WORKSHEET_FONT_DIR", "fonts"),
		Scale:       parseFloat(getEnv("WORKSHEET_SCALE", "3"), 3),
		Concurrency: parseInt(getEnv("WORKSHEET_CONCURRENCY", "4"), 4),
		OutputDir:   getEnv("WORKSHEET_OUTPUT_DIR", "out"),
		Seed:        int64(parseInt(getEnv("WORKSHEET_SEED", "0"), 0)),
		Timeout:     parseDuration(getEnv("WORKSHEET_TIMEOUT", "2m"), 2*time.Minute),
	}
	if cfg.Render.Scale <= 0 {
		cfg.Render.Scale = 3
	}
	if cfg.Render.Concurrency <= 0 {
		cfg.Render.Concurrency = 1
	}

	cfg.Storage = StorageConfig{
		DataDir:  getEnv("WORKSHEET_DATA_DIR", defaultDataDir()),
		S3Bucket: getEnv("WORKSHEET_S3_BUCKET", ""),
		S3Prefix: strings.Trim(getEnv("WORKSHEET_S3_PREFIX", "worksheets"), "/"),
	}

	return cfg
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".worksheet"
	}
	return filepath.Join(home, ".worksheet")
}
