package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config     string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	GCS        string
	LogFile    string
}

var flags Flags

// BindFlags registers the override flags on fs. Call it on the root
// command's persistent flag set before parsing.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flags.Config, "config", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&flags.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&flags.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&flags.Width, "width", 0, "Window width")
	fs.IntVar(&flags.Height, "height", 0, "Window height")
	fs.StringVar(&flags.GCS, "gcs", "", "Display coordinate system (EPSG:3857 or EPSG:4326)")
	fs.StringVar(&flags.LogFile, "log-file", "", "Write logs to this file as well")
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath() string {
	return flags.Config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if flags.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if flags.Width > 0 {
		cfg.Graphics.Width = flags.Width
	}
	if flags.Height > 0 {
		cfg.Graphics.Height = flags.Height
	}
	if flags.GCS != "" {
		cfg.Map.GCS = flags.GCS
	}
	if flags.LogFile != "" {
		cfg.Logging.LogFile = flags.LogFile
	}
}
