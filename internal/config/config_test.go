package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRIDOCR_LANGUAGE", "")
	t.Setenv("TESSDATA_PREFIX", "")
	t.Setenv("GRIDOCR_OUTPUT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "eng" {
		t.Errorf("Language = %q, want %q", cfg.Language, "eng")
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GRIDOCR_LANGUAGE", "eng+fra")
	t.Setenv("TESSDATA_PREFIX", "")
	t.Setenv("GRIDOCR_OUTPUT_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "eng+fra" {
		t.Errorf("Language = %q, want %q", cfg.Language, "eng+fra")
	}
	if cfg.OutputDir != dir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, dir)
	}
}

func TestValidateMissingTessdata(t *testing.T) {
	cfg := &Config{
		TessdataPrefix: filepath.Join(t.TempDir(), "no-such-dir"),
		OutputDir:      ".",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing tessdata directory")
	}
	if !strings.Contains(err.Error(), "TESSDATA_PREFIX") {
		t.Errorf("error should mention TESSDATA_PREFIX, got %v", err)
	}
}

func TestValidateOutputDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{OutputDir: file}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when output dir is a regular file")
	}
}
