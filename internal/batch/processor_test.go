package batch

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"

	"raymarch-renderer/internal/camera"
	"raymarch-renderer/internal/mathutil"
	"raymarch-renderer/internal/mirror"
	"raymarch-renderer/internal/raymarch"
)

func TestSimulate(t *testing.T) {
	start := camera.Transform{Position: mathutil.Vec3{0, 1, -5}}
	inputs := []camera.Input{{Vertical: 1}, {Vertical: 1}, {MouseX: 5}}
	shots := Simulate(start, camera.DefaultFlySettings(), inputs, 0.1)
	if len(shots) != 3 {
		t.Fatalf("%d shots", len(shots))
	}
	if shots[1].Transform.Position[2] <= shots[0].Transform.Position[2] {
		t.Errorf("camera did not move forward: %v", shots)
	}
	if shots[2].Transform.Yaw != 10 || shots[2].Index != 2 {
		t.Errorf("last shot = %+v", shots[2])
	}

	still := Simulate(start, camera.DefaultFlySettings(), nil, 0.1)
	if len(still) != 1 || still[0].Transform != start {
		t.Errorf("still = %+v", still)
	}
}

func testCamera(t *testing.T, w, h int) *camera.Camera {
	t.Helper()
	e, err := raymarch.NewEffect(raymarch.DefaultSettings(), raymarch.NewProgram())
	if err != nil {
		t.Fatal(err)
	}
	return &camera.Camera{
		Transform:   camera.Transform{Position: mathutil.Vec3{0, 1.5, -6}},
		FieldOfView: 60,
		Width:       w,
		Height:      h,
		Filters:     mirror.NewStack(e),
	}
}

func TestRunWritesFramesAndManifest(t *testing.T) {
	out := t.TempDir()
	main := testCamera(t, 16, 12)
	preview := &camera.Camera{FieldOfView: 60, Width: 4, Height: 3, Filters: mirror.NewStack()}
	m := &mirror.Mirror{Main: main.Filters, Preview: preview.Filters}
	if err := m.Layout(); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		OutputDir:   out,
		Main:        main,
		Preview:     preview,
		ClearColor:  [4]float64{0.2, 0.3, 0.5, 1},
		Supersample: 2,
		Tonemap:     true,
		Workers:     2,
	}
	shots := Simulate(main.Transform, camera.DefaultFlySettings(), []camera.Input{{Vertical: 1}, {Horizontal: 1}}, 0.05)
	results := Run(cfg, shots)

	for _, r := range results {
		if !r.Success {
			t.Fatalf("shot %d failed: %s", r.Shot.Index, r.Error)
		}
		f, err := os.Open(filepath.Join(out, r.Image))
		if err != nil {
			t.Fatal(err)
		}
		img, err := webp.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", r.Image, err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
			t.Errorf("%s is %v, want 8x6", r.Image, b)
		}
		if _, err := os.Stat(filepath.Join(out, r.Preview)); err != nil {
			t.Errorf("preview missing: %v", err)
		}
	}

	manifest := filepath.Join(out, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[1].Image != filepath.Join("frames", "0001.webp") {
		t.Fatalf("manifest = %+v", entries)
	}
	if e := entries[0]; e.Forward != shots[0].Transform.Forward() || e.Up != shots[0].Transform.Up() || e.Right != shots[0].Transform.Right() {
		t.Errorf("manifest basis = %v %v %v", e.Forward, e.Right, e.Up)
	}
}

func TestRunReportsFailures(t *testing.T) {
	main := testCamera(t, 4, 4)
	main.FieldOfView = 0
	results := Run(Config{OutputDir: t.TempDir(), Main: main, Workers: 1}, []Shot{{Index: 0}})
	if results[0].Success || results[0].Error == "" {
		t.Fatalf("result = %+v", results[0])
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("manifest = %s, want empty list", data)
	}
}

type stubTextures struct {
	img   *image.NRGBA
	err   error
	calls int
}

func (s *stubTextures) Resolve(string) (*image.NRGBA, error) {
	s.calls++
	return s.img, s.err
}

func TestRunUsesBackground(t *testing.T) {
	red := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	red.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	blue := [4]float64{0, 0, 1, 1}

	tests := []struct {
		name string
		tex  *stubTextures
		want color.NRGBA
	}{
		{"resolved", &stubTextures{img: red}, color.NRGBA{R: 255, A: 255}},
		{"failed load", &stubTextures{err: errors.New("missing")}, color.NRGBA{B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			main := &camera.Camera{FieldOfView: 60, Width: 4, Height: 4, Filters: mirror.NewStack()}
			preview := &camera.Camera{FieldOfView: 60, Width: 2, Height: 2, Filters: mirror.NewStack()}
			cfg := Config{
				OutputDir:   out,
				Main:        main,
				Preview:     preview,
				Background:  "sky.png",
				Textures:    tt.tex,
				ClearColor:  blue,
				Supersample: 1,
				Workers:     1,
			}
			results := Run(cfg, []Shot{{Index: 0}})
			if !results[0].Success {
				t.Fatal(results[0].Error)
			}
			if tt.tex.calls != 1 {
				t.Errorf("resolved %d times, want 1", tt.tex.calls)
			}
			for _, rel := range []string{results[0].Image, results[0].Preview} {
				f, err := os.Open(filepath.Join(out, rel))
				if err != nil {
					t.Fatal(err)
				}
				img, err := webp.Decode(f)
				f.Close()
				if err != nil {
					t.Fatal(err)
				}
				if got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA); got != tt.want {
					t.Errorf("%s pixel = %v, want %v", rel, got, tt.want)
				}
			}
		})
	}
}
