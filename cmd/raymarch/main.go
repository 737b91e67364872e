package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"raymarch-renderer/internal/batch"
	"raymarch-renderer/internal/camera"
	"raymarch-renderer/internal/config"
	"raymarch-renderer/internal/mirror"
	"raymarch-renderer/internal/raymarch"
	"raymarch-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	frames := flag.Int("frames", 0, "Render only the first N frames")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Output width in pixels (default: 512)")
	height := flag.Int("height", 0, "Output height in pixels (default: 288)")
	preview := flag.Int("preview", 0, "Also render a mirrored preview camera this many pixels wide")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:    *outputDir,
		Width:        *width,
		Height:       *height,
		PreviewWidth: *preview,
		Workers:      *workers,
	})

	// Load flight track
	track := cfg.Track
	if cfg.TrackFile != "" {
		var err error
		track, err = camera.LoadTrack(cfg.TrackFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading track: %v\n", err)
			os.Exit(1)
		}
	}
	inputs := track.Expand()
	if *frames > 0 && *frames < len(inputs) {
		inputs = inputs[:*frames]
	}

	// Main camera with the raymarch effect
	effect, err := raymarch.NewEffect(cfg.Raymarch, raymarch.NewProgram())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mainCam := &camera.Camera{
		Transform:   cfg.Camera,
		FieldOfView: cfg.FieldOfView,
		Width:       cfg.Width * cfg.Supersample,
		Height:      cfg.Height * cfg.Supersample,
		Filters:     mirror.NewStack(effect),
	}

	// Preview camera mirrors the main camera's filters
	var previewCam *camera.Camera
	var registry mirror.Registry
	if cfg.PreviewWidth > 0 {
		previewCam = &camera.Camera{
			FieldOfView: cfg.FieldOfView,
			Width:       cfg.PreviewWidth,
			Height:      cfg.PreviewHeight(),
			Filters:     mirror.NewStack(),
		}
		registry.Register(&mirror.Mirror{Main: mainCam.Filters, Preview: previewCam.Filters})
	}
	if err := registry.Notify(); err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing preview: %v\n", err)
		os.Exit(1)
	}

	shots := batch.Simulate(cfg.Camera, cfg.Fly, inputs, 1/cfg.FrameRate)

	// Print summary
	mode := ""
	if *frames > 0 {
		mode = fmt.Sprintf(" (first %d frames)", *frames)
	}

	fmt.Printf("SDF Raymarch Renderer → WebP%s\n", mode)
	fmt.Printf("Frames: %d, Size: %dx%d (x%d), Workers: %d\n", len(shots), cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Main:        mainCam,
		Preview:     previewCam,
		Background:  cfg.Background,
		Textures:    texture.NewCache(),
		ClearColor:  cfg.ClearColor,
		Supersample: cfg.Supersample,
		Tonemap:     *cfg.Tonemap,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, shots)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(shots))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Shot.Index, e.Error)
		}
	}

	// Write manifest
	if manifestPath, err := writeManifest(cfg.OutputDir, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// writeManifest creates outputDir if needed and writes manifest.json into it.
func writeManifest(outputDir string, results []batch.Result) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, "manifest.json")
	return path, batch.WriteManifest(path, results)
}
