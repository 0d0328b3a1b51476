package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"sphereview/internal/config"
	"sphereview/internal/monitoring"
	"sphereview/internal/sphereview"
	"sphereview/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	spriteFile := flag.String("sprite", "", "Element sprite file or directory (default: orange disc)")
	elements := flag.Int("elements", 0, "Number of elements (default: 101)")
	radius := flag.Float64("radius", 0, "Sphere radius in points (default: 150)")
	sensitivity := flag.Float64("sensitivity", 0, "Pan sensitivity in radians per point (default: 0.005)")
	flat := flag.Bool("flat", false, "Disable depth-based opacity")
	width := flag.Int("width", 0, "Viewport width (default: 400)")
	height := flag.Int("height", 0, "Viewport height (default: 800)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	monitoring.Verbose = *verbose

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Elements:    *elements,
		Radius:      *radius,
		Sensitivity: *sensitivity,
		FlatOpacity: *flat,
		Sprite:      *spriteFile,
		Width:       *width,
		Height:      *height,
	})

	elementColor, _ := config.ParseColor(cfg.ElementColor)
	background, _ := config.ParseColor(cfg.Background)

	var spriteIndex *texture.Index
	if cfg.SpriteFile != "" {
		var err error
		spriteIndex, err = texture.BuildIndex(cfg.SpriteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sprite index: %v\n", err)
		}
	}

	view := sphereview.New(sphereview.Options{
		ElementCount: cfg.ElementCount,
		Width:        float64(cfg.ViewportWidth),
		Height:       float64(cfg.ViewportHeight),
		Radius:       cfg.Radius,
		Sensitivity:  cfg.Sensitivity,
		FlatOpacity:  cfg.FlatOpacity,
	})
	defer view.Close()

	g := newGame(view, texture.NewCache(spriteIndex, cfg.ElementSize, elementColor), gameConfig{
		width:       cfg.ViewportWidth,
		height:      cfg.ViewportHeight,
		elementSize: float64(cfg.ElementSize),
		background:  background,
	})

	ebiten.SetWindowTitle("Sphere view")
	ebiten.SetWindowSize(cfg.ViewportWidth, cfg.ViewportHeight)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
