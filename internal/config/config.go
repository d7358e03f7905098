// Package config loads CLI configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the gridocr CLI configuration.
type Config struct {
	// Language is the Tesseract language string, e.g. "eng" or "eng+fra".
	Language string

	// TessdataPrefix is the Tesseract language data directory. Empty means
	// the engine's compiled-in default.
	TessdataPrefix string

	// OutputDir is where rectified images and exported tables are written.
	// An explicit value replaces any notion of a "last used" directory.
	OutputDir string
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing values fall back to defaults.
func Load() (*Config, error) {
	// A missing .env file is not an error; explicit environment wins anyway.
	_ = godotenv.Load()

	cfg := &Config{
		Language:       getEnvOrDefault("GRIDOCR_LANGUAGE", "eng"),
		TessdataPrefix: getEnvOrDefault("TESSDATA_PREFIX", ""),
		OutputDir:      getEnvOrDefault("GRIDOCR_OUTPUT_DIR", "."),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration that would only surface mid-OCR:
// a tessdata path that does not exist, or an unwritable output directory.
func (c *Config) Validate() error {
	if c.TessdataPrefix != "" {
		if _, err := os.Stat(c.TessdataPrefix); err != nil {
			return fmt.Errorf("TESSDATA_PREFIX %q: %w", c.TessdataPrefix, err)
		}
	}
	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if err != nil {
			return fmt.Errorf("output directory %q: %w", c.OutputDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory %q is not a directory", c.OutputDir)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
