package config

import (
	"os"
	"path/filepath"
	"testing"

	"raymarch-renderer/internal/raymarch"
)

func TestLoadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"width": 320,
		"background": "sky.png",
		"raymarch": {"box_round": 0.5, "max_iterations": 999},
		"track": [{"vertical": 1, "frames": 3}]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{})

	if cfg.Width != 320 || cfg.Height != 288 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Background != filepath.Join(dir, "sky.png") {
		t.Errorf("background = %s", cfg.Background)
	}
	def := raymarch.DefaultSettings()
	if cfg.Raymarch.BoxRound != 0.5 || cfg.Raymarch.Sphere1 != def.Sphere1 {
		t.Errorf("raymarch = %+v", cfg.Raymarch)
	}
	if cfg.Raymarch.MaxIterations != 300 {
		t.Errorf("max iterations = %d, want clamped 300", cfg.Raymarch.MaxIterations)
	}
	if cfg.Fly.Speed != 10 {
		t.Errorf("fly speed = %g", cfg.Fly.Speed)
	}
	if len(cfg.Track.Expand()) != 3 {
		t.Errorf("track = %+v", cfg.Track)
	}
	if !*cfg.Tonemap {
		t.Error("tonemap should default on")
	}
}

func TestResolveFlagsAndClamp(t *testing.T) {
	cfg := Default()
	cfg.FieldOfView = 250
	cfg.OutputDir = "from-file"
	cfg.Resolve(Flags{OutputDir: "out", Width: 100, Height: 50, PreviewWidth: 10, Workers: 3})

	if cfg.OutputDir != "out" || cfg.Width != 100 || cfg.Workers != 3 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.FieldOfView != 179 {
		t.Errorf("fov = %g, want clamped 179", cfg.FieldOfView)
	}
	if cfg.PreviewHeight() != 5 {
		t.Errorf("preview height = %d", cfg.PreviewHeight())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "none.json")); err == nil {
		t.Error("missing file: expected error")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("bad json: expected error")
	}
}
