// Package config handles geoline configuration loading and management.
package config

// Config holds all viewer and builder settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Map      MapConfig      `yaml:"map" toml:"map"`
	Style    StyleConfig    `yaml:"style" toml:"style"`
	Data     DataConfig     `yaml:"data" toml:"data"`
	Snapshot SnapshotConfig `yaml:"snapshot" toml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Background string `yaml:"background" toml:"background"`
}

// MapConfig holds the display coordinate system and feature backend.
type MapConfig struct {
	GCS     string `yaml:"gcs" toml:"gcs"`           // Display coordinate system
	DataGCS string `yaml:"data_gcs" toml:"data_gcs"` // Coordinate system of loaded features
	Backend string `yaml:"backend" toml:"backend"`   // Feature registry backend key
	Padding int    `yaml:"padding" toml:"padding"`   // Pixels kept free around fitted data
}

// StyleConfig holds stroke defaults for features without style properties.
type StyleConfig struct {
	StrokeWidth   float64 `yaml:"stroke_width" toml:"stroke_width"`
	StrokeColor   string  `yaml:"stroke_color" toml:"stroke_color"`
	StrokeOpacity float64 `yaml:"stroke_opacity" toml:"stroke_opacity"`
	Bin           int     `yaml:"bin" toml:"bin"`
}

// DataConfig holds input file paths.
type DataConfig struct {
	Paths []string `yaml:"paths" toml:"paths"` // GeoJSON files loaded at startup
}

// SnapshotConfig holds PNG snapshot settings.
type SnapshotConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: "#1a1a26",
		},
		Map: MapConfig{
			GCS:     "EPSG:3857",
			DataGCS: "EPSG:4326",
			Backend: "gl",
			Padding: 20,
		},
		Style: StyleConfig{
			StrokeWidth:   1.0,
			StrokeColor:   "#ffffff",
			StrokeOpacity: 1.0,
		},
		Snapshot: SnapshotConfig{
			Dir:    "snapshots",
			Prefix: "geoline",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
