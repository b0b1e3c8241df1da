package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.Renderer != "" {
		t.Errorf("expected automatic backend selection, got %q", cfg.Graphics.Renderer)
	}
	if !cfg.Graphics.Native {
		t.Error("expected the native renderer to be preferred by default")
	}
	if cfg.Graphics.WireOverlay {
		t.Error("expected wire overlay to be off by default")
	}

	if cfg.Viewer.RotateSpeed != 0.4 {
		t.Errorf("expected rotate speed 0.4, got %f", cfg.Viewer.RotateSpeed)
	}
	if cfg.Viewer.ZoomStep != 0.5 {
		t.Errorf("expected zoom step 0.5, got %f", cfg.Viewer.ZoomStep)
	}
	if cfg.Viewer.MinZoom != 1.5 || cfg.Viewer.MaxZoom != 12.0 {
		t.Errorf("expected zoom bounds [1.5, 12], got [%f, %f]", cfg.Viewer.MinZoom, cfg.Viewer.MaxZoom)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false
  renderer: "vulkan"
  native: false
  wire_overlay: true

viewer:
  model_path: "models/chair.obj"
  rotate_speed: 0.25
  zoom_step: 1.0

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.Renderer != "vulkan" {
		t.Errorf("expected renderer 'vulkan', got %q", cfg.Graphics.Renderer)
	}
	if cfg.Graphics.Native {
		t.Error("expected native to be false")
	}
	if !cfg.Graphics.WireOverlay {
		t.Error("expected wire overlay to be true")
	}

	if cfg.Viewer.ModelPath != "models/chair.obj" {
		t.Errorf("expected model path to load, got %q", cfg.Viewer.ModelPath)
	}
	if cfg.Viewer.RotateSpeed != 0.25 {
		t.Errorf("expected rotate speed 0.25, got %f", cfg.Viewer.RotateSpeed)
	}
	// Values absent from the file keep their defaults.
	if cfg.Viewer.MinZoom != 1.5 {
		t.Errorf("expected default min zoom, got %f", cfg.Viewer.MinZoom)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(RendererEnvVar, "software")
	cfg := Default()
	applyEnv(cfg)
	if cfg.Graphics.Renderer != "software" {
		t.Errorf("expected env var to set the renderer, got %q", cfg.Graphics.Renderer)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Renderer = "dx12"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config failed: %v", err)
	}
	if loaded.Graphics.Renderer != "dx12" {
		t.Errorf("round trip lost the renderer setting: %q", loaded.Graphics.Renderer)
	}
}
