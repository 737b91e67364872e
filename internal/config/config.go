package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"raymarch-renderer/internal/camera"
	"raymarch-renderer/internal/frustum"
	"raymarch-renderer/internal/raymarch"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"-"`
	OutputDir  string `json:"output_dir"`
	Background string `json:"background"`
	TrackFile  string `json:"track_file"`

	// Render settings
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	FieldOfView  float64    `json:"field_of_view"`
	Supersample  int        `json:"supersample"`
	PreviewWidth int        `json:"preview_width"`
	FrameRate    float64    `json:"frame_rate"`
	Tonemap      *bool      `json:"tonemap"`
	ClearColor   [4]float64 `json:"clear_color"`
	Workers      int        `json:"workers"`

	// Scene
	Camera   camera.Transform   `json:"camera"`
	Fly      camera.FlySettings `json:"fly"`
	Raymarch raymarch.Settings  `json:"raymarch"`
	Track    camera.Track       `json:"track"`
}

// Default returns a config with scene defaults filled in. Render settings
// stay zero until Resolve.
func Default() Config {
	return Config{
		Camera:     camera.Transform{Position: [3]float64{0, 2, -7}, Pitch: 8},
		Fly:        camera.DefaultFlySettings(),
		Raymarch:   raymarch.DefaultSettings(),
		ClearColor: [4]float64{0.35, 0.45, 0.6, 1},
	}
}

// Load reads a JSON config file over Default().
// Relative paths in the file are resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir    string
	Width        int
	Height       int
	PreviewWidth int
	Workers      int
}

// Resolve fills in any empty fields with defaults and clamps ranged values.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.PreviewWidth > 0 {
		c.PreviewWidth = flags.PreviewWidth
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.Background = c.resolvePath(c.Background)
	c.TrackFile = c.resolvePath(c.TrackFile)

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = 288
	}
	if c.FieldOfView <= 0 {
		c.FieldOfView = 60
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Tonemap == nil {
		on := true
		c.Tonemap = &on
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	in := frustum.Intrinsics{FieldOfView: c.FieldOfView}
	in.Clamp()
	c.FieldOfView = in.FieldOfView
	c.Raymarch.Clamp()
}

// PreviewHeight keeps the main aspect ratio.
func (c *Config) PreviewHeight() int {
	if c.PreviewWidth <= 0 {
		return 0
	}
	h := c.PreviewWidth * c.Height / c.Width
	if h < 1 {
		h = 1
	}
	return h
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
