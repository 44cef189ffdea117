package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagScenario     = flag.String("scenario", "", "Built-in scenario: cube, dodecahedron, cylinder")
	flagScenarioFile = flag.String("scenario-file", "", "Path to a custom scenario YAML file")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagHeadless     = flag.Bool("headless", false, "Run without a window using the null renderer")
	flagFrames       = flag.Int("frames", 0, "Stop after rendering this many frames")
	flagSaveConfig   = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagScenario != "" {
		cfg.Scene.Scenario = *flagScenario
		cfg.Scene.ScenarioFile = ""
	}
	if *flagScenarioFile != "" {
		cfg.Scene.ScenarioFile = *flagScenarioFile
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagHeadless {
		cfg.Scene.Headless = true
	}
	if *flagFrames > 0 {
		cfg.Scene.Frames = *flagFrames
	}
}
