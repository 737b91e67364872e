package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"raymarch-renderer/internal/camera"
	"raymarch-renderer/internal/postprocess"
	"raymarch-renderer/internal/raster"
	"raymarch-renderer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run. Cameras and their
// filter stacks are only read while workers run.
type Config struct {
	OutputDir   string
	Main        *camera.Camera
	Preview     *camera.Camera // optional
	Background  string           // image path; empty: ClearColor
	Textures    texture.Resolver // resolves Background
	ClearColor  [4]float64
	Supersample int // Main renders at Supersample × its output size
	Tonemap     bool
	Workers     int
}

// Shot is one simulated camera pose.
type Shot struct {
	Index     int
	Transform camera.Transform
}

// Result holds the outcome of rendering one shot.
type Result struct {
	Shot    Shot
	Image   string // relative to OutputDir
	Preview string
	Success bool
	Error   string
}

// Simulate steps the fly controller over inputs at dt seconds per frame and
// returns one shot per input. With no inputs the start pose is the only shot.
func Simulate(start camera.Transform, fly camera.FlySettings, inputs []camera.Input, dt float64) []Shot {
	if len(inputs) == 0 {
		return []Shot{{Index: 0, Transform: start}}
	}
	t := start
	ctrl := camera.NewFlyController(fly, t)
	shots := make([]Shot, len(inputs))
	for i, in := range inputs {
		ctrl.Update(&t, in, dt)
		shots[i] = Shot{Index: i, Transform: t}
	}
	return shots
}

// Run renders all shots using a worker pool.
func Run(cfg Config, shots []Shot) []Result {
	total := len(shots)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}

	bg := background(cfg)
	mainSrc := sourceBuffer(cfg, cfg.Main, bg)
	var previewSrc *raster.FrameBuffer
	if cfg.Preview != nil {
		previewSrc = sourceBuffer(cfg, cfg.Preview, bg)
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.2f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	shotChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range shotChan {
				results[idx] = processShot(cfg, shots[idx], mainSrc, previewSrc)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range shots {
		shotChan <- i
	}
	close(shotChan)

	wg.Wait()
	close(done)

	return results
}

// background resolves the configured background image. A failed load is
// reported and falls back to the clear colour.
func background(cfg Config) *image.NRGBA {
	if cfg.Background == "" || cfg.Textures == nil {
		return nil
	}
	img, err := cfg.Textures.Resolve(cfg.Background)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: background: %v (using clear color)\n", err)
		return nil
	}
	return img
}

func sourceBuffer(cfg Config, cam *camera.Camera, bg *image.NRGBA) *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(cam.Width, cam.Height)
	if bg != nil {
		fb.FromImage(bg)
	} else {
		fb.Fill(cfg.ClearColor)
	}
	return fb
}

func processShot(cfg Config, shot Shot, mainSrc, previewSrc *raster.FrameBuffer) Result {
	res := Result{Shot: shot}

	name := fmt.Sprintf("%04d.webp", shot.Index)
	res.Image = filepath.Join("frames", name)
	w := cfg.Main.Width / cfg.Supersample
	h := cfg.Main.Height / cfg.Supersample
	if err := renderTo(cfg, cfg.Main, shot, mainSrc, w, h, res.Image); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview != nil {
		res.Preview = filepath.Join("preview", name)
		if err := renderTo(cfg, cfg.Preview, shot, previewSrc, cfg.Preview.Width, cfg.Preview.Height, res.Preview); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = true
	return res
}

func renderTo(cfg Config, base *camera.Camera, shot Shot, src *raster.FrameBuffer, w, h int, rel string) error {
	cam := *base
	cam.Transform = shot.Transform

	fb, err := cam.Render(shot.Index, src)
	if err != nil {
		return err
	}

	// Post-processing: supersample downsample
	img := postprocess.Downsample(fb.ToNRGBA(cfg.Tonemap), w, h)

	outPath := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %v", err)
	}
	return nil
}
