package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"sphereview/internal/config"
	"sphereview/internal/texture"
)

// dumpSprite writes the sprite resolved for element i as a PNG.
func dumpSprite(sprites *texture.Cache, index *texture.Index, out string, i int) error {
	img := sprites.Resolve(i)
	dst := filepath.Join(out, fmt.Sprintf("element_%03d.png", i))
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}

	src, ok := index.PathFor(i)
	if !ok {
		src = "(disc)"
	}
	b := img.Bounds()
	fmt.Printf("OK  %3d  %s -> %s  (%dx%d)\n", i, src, dst, b.Dx(), b.Dy())
	return nil
}

func main() {
	spriteFile := flag.String("sprite", "", "Element sprite file or directory (default: orange disc)")
	n := flag.Int("n", 8, "Number of elements to dump")
	out := flag.String("output", ".", "Output directory")
	size := flag.Int("size", 0, "Fallback disc size (default: 50)")
	colorFlag := flag.String("color", "", "Fallback disc color (default: #ff9500)")
	flag.Parse()

	var cfg config.Config
	cfg.ElementSize = *size
	cfg.ElementColor = *colorFlag
	cfg.Resolve(config.Flags{Sprite: *spriteFile})
	elementColor, _ := config.ParseColor(cfg.ElementColor)

	var index *texture.Index
	if cfg.SpriteFile != "" {
		var err error
		index, err = texture.BuildIndex(cfg.SpriteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	sprites := texture.NewCache(index, cfg.ElementSize, elementColor)

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for i := 0; i < *n; i++ {
		if err := dumpSprite(sprites, index, *out, i); err != nil {
			fmt.Printf("ERR %3d  %v\n", i, err)
			failed++
		}
	}
	fmt.Printf("\n%d/%d written (%d sprites indexed)\n", *n-failed, *n, index.Len())
	if failed > 0 {
		os.Exit(1)
	}
}
