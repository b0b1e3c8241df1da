package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagModel    = flag.String("model", "", "Path to model file to open")
	flagRenderer = flag.String("renderer", "", "Force render backend (dx12, vulkan, software)")
	flagWire     = flag.Bool("wire", false, "Draw wireframe overlay")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Viewer.ModelPath = *flagModel
	}
	if *flagRenderer != "" {
		cfg.Graphics.Renderer = *flagRenderer
	}
	if *flagWire {
		cfg.Graphics.WireOverlay = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}

	// A bare positional argument is also accepted as the model path.
	if cfg.Viewer.ModelPath == "" && flag.NArg() > 0 {
		cfg.Viewer.ModelPath = flag.Arg(0)
	}
}
