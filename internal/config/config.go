// Package config loads CLI settings from an optional JSON file and flags.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config holds the sphere, viewport and render settings shared by the CLIs.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	ScriptFile string `json:"script_file"`
	SpriteFile string `json:"sprite_file"`
	OutputDir  string `json:"output_dir"`

	// Sphere settings
	ElementCount int     `json:"element_count"`
	Radius       float64 `json:"radius"`
	Sensitivity  float64 `json:"sensitivity"`
	FlatOpacity  bool    `json:"flat_opacity"`

	// Viewport and elements
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	ElementSize    int    `json:"element_size"`
	ElementColor   string `json:"element_color"`
	Background     string `json:"background"`

	// Render settings
	FrameIntervalMS int `json:"frame_interval_ms"`
	MaxFrames       int `json:"max_frames"`
	Supersample     int `json:"supersample"`
	WebPQuality     int `json:"webp_quality"`
	Workers         int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. BaseDir defaults to
// the directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Elements > 0 {
		c.ElementCount = flags.Elements
	}
	if flags.Radius > 0 {
		c.Radius = flags.Radius
	}
	if flags.Sensitivity > 0 {
		c.Sensitivity = flags.Sensitivity
	}
	if flags.FlatOpacity {
		c.FlatOpacity = true
	}
	if flags.Script != "" {
		c.ScriptFile = flags.Script
	}
	if flags.Sprite != "" {
		c.SpriteFile = flags.Sprite
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.ViewportWidth = flags.Width
	}
	if flags.Height > 0 {
		c.ViewportHeight = flags.Height
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.ScriptFile = c.resolvePath(c.ScriptFile)
		c.SpriteFile = c.resolvePath(c.SpriteFile)
		c.OutputDir = c.resolvePath(c.OutputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}

	// Defaults for sphere settings
	if c.ElementCount < 0 {
		c.ElementCount = 0
	} else if c.ElementCount == 0 {
		c.ElementCount = DefaultElementCount
	}
	if c.Radius < 0 {
		c.Radius = 0
	} else if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if c.Sensitivity <= 0 {
		c.Sensitivity = DefaultSensitivity
	}

	// Defaults for viewport and render settings
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 400
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 800
	}
	if c.ElementSize <= 0 {
		c.ElementSize = 50
	}
	if _, err := ParseColor(c.ElementColor); c.ElementColor == "" || err != nil {
		c.ElementColor = "#ff9500"
	}
	if _, err := ParseColor(c.Background); c.Background == "" || err != nil {
		c.Background = "#00000000"
	}
	if c.FrameIntervalMS <= 0 {
		c.FrameIntervalMS = 16
	}
	if c.MaxFrames <= 0 {
		c.MaxFrames = 600
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	} else if c.WebPQuality > 100 {
		c.WebPQuality = 100
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Defaults for the sphere, matching the reference demo host.
const (
	DefaultElementCount = 101
	DefaultRadius       = 150
	DefaultSensitivity  = 0.005
)

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Elements    int
	Radius      float64
	Sensitivity float64
	FlatOpacity bool
	Script      string
	Sprite      string
	OutputDir   string
	Width       int
	Height      int
	Quality     int
	Workers     int
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("config: bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: bad color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
