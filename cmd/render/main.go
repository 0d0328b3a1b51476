package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sphereview/internal/batch"
	"sphereview/internal/config"
	"sphereview/internal/monitoring"
	"sphereview/internal/raster"
	"sphereview/internal/script"
	"sphereview/internal/sphereview"
	"sphereview/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	scriptFile := flag.String("script", "", "Gesture script JSON (default: built-in demo)")
	spriteFile := flag.String("sprite", "", "Element sprite file or directory (default: orange disc)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	elements := flag.Int("elements", 0, "Number of elements (default: 101)")
	radius := flag.Float64("radius", 0, "Sphere radius in points (default: 150)")
	sensitivity := flag.Float64("sensitivity", 0, "Pan sensitivity in radians per point (default: 0.005)")
	flat := flag.Bool("flat", false, "Disable depth-based opacity")
	width := flag.Int("width", 0, "Viewport width (default: 400)")
	height := flag.Int("height", 0, "Viewport height (default: 800)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	testN := flag.Int("test", 0, "Encode only the first N frames")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()
	monitoring.Verbose = *verbose

	// Load config
	var cfg config.Config
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
		Elements:    *elements,
		Radius:      *radius,
		Sensitivity: *sensitivity,
		FlatOpacity: *flat,
		Script:      *scriptFile,
		Sprite:      *spriteFile,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Quality:     *quality,
		Workers:     *workers,
	})

	elementColor, _ := config.ParseColor(cfg.ElementColor)
	background, _ := config.ParseColor(cfg.Background)

	// Load script
	s := script.Demo()
	if cfg.ScriptFile != "" {
		var err error
		s, err = script.Load(cfg.ScriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
			os.Exit(1)
		}
	}

	// Build sprite index
	var spriteIndex *texture.Index
	if cfg.SpriteFile != "" {
		var err error
		spriteIndex, err = texture.BuildIndex(cfg.SpriteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sprite index: %v\n", err)
		}
	}
	sprites := texture.NewCache(spriteIndex, cfg.ElementSize, elementColor)
	fmt.Printf("Sprites: %d indexed\n", spriteIndex.Len())

	// Replay the script
	view := sphereview.New(sphereview.Options{
		ElementCount: cfg.ElementCount,
		Width:        float64(cfg.ViewportWidth),
		Height:       float64(cfg.ViewportHeight),
		Radius:       cfg.Radius,
		Sensitivity:  cfg.Sensitivity,
		FlatOpacity:  cfg.FlatOpacity,
	})
	defer view.Close()

	frames, err := script.Run(view, s, script.Options{
		Interval:  time.Duration(cfg.FrameIntervalMS) * time.Millisecond,
		MaxFrames: cfg.MaxFrames,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(frames) {
		frames = frames[:*testN]
	}

	if len(frames) == 0 {
		fmt.Println("No frames to render.")
		os.Exit(0)
	}

	name := s.Name
	if name == "" {
		name = filepath.Base(cfg.ScriptFile)
	}
	fmt.Printf("Sphere view → WebP (%s)\n", name)
	fmt.Printf("Elements: %d, Frames: %d, Workers: %d\n", cfg.ElementCount, len(frames), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Sprites:   sprites,
		Render: raster.Options{
			Width:       cfg.ViewportWidth,
			Height:      cfg.ViewportHeight,
			Supersample: cfg.Supersample,
			ElementSize: float64(cfg.ElementSize),
			Background:  background,
		},
		WebPQuality: cfg.WebPQuality,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}

	results := batch.Run(batchCfg, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(frames))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batch.BuildManifest(name, batchCfg, frames, results)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
