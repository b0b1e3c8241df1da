// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`

	// Renderer forces a specific backend: "dx12", "vulkan", or "software".
	// Empty means automatic selection with fallback.
	Renderer string `yaml:"renderer"`

	// Native uses the GPU-native renderer for the primary backend slot.
	Native bool `yaml:"native"`

	// WireOverlay draws the wireframe on top of textured geometry.
	WireOverlay bool `yaml:"wire_overlay"`
}

// ViewerConfig holds model and camera settings.
type ViewerConfig struct {
	ModelPath string `yaml:"model_path"`

	// RotateSpeed is degrees of model rotation per pixel of mouse drag.
	RotateSpeed float32 `yaml:"rotate_speed"`

	// ZoomStep is camera distance change per scroll wheel notch.
	ZoomStep float32 `yaml:"zoom_step"`

	MinZoom float32 `yaml:"min_zoom"`
	MaxZoom float32 `yaml:"max_zoom"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			VSync:       true,
			Renderer:    "",
			Native:      true,
			WireOverlay: false,
		},
		Viewer: ViewerConfig{
			RotateSpeed: 0.4,
			ZoomStep:    0.5,
			MinZoom:     1.5,
			MaxZoom:     12.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
