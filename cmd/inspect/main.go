package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"sphereview/internal/config"
	"sphereview/internal/layout"
	"sphereview/internal/mathutil"
	"sphereview/internal/sphereview"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	elements := flag.Int("elements", 0, "Number of elements (default: 101)")
	radius := flag.Float64("radius", 0, "Sphere radius in points (default: 150)")
	width := flag.Int("width", 0, "Viewport width (default: 400)")
	height := flag.Int("height", 0, "Viewport height (default: 800)")
	flat := flag.Bool("flat", false, "Disable depth-based opacity")
	rotX := flag.Float64("x", 0, "Rotation offset about the X axis in points")
	rotY := flag.Float64("y", 0, "Rotation offset about the Y axis in points")
	front := flag.Bool("front", false, "List front-facing elements only")
	asJSON := flag.Bool("json", false, "Print the layout pass as JSON")
	flag.Parse()

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
		FlatOpacity: *flat,
		Width:       *width,
		Height:      *height,
	})

	v := sphereview.New(sphereview.Options{
		ElementCount: cfg.ElementCount,
		Width:        float64(cfg.ViewportWidth),
		Height:       float64(cfg.ViewportHeight),
		Radius:       cfg.Radius,
		Sensitivity:  cfg.Sensitivity,
		FlatOpacity:  cfg.FlatOpacity,
	})
	defer v.Close()
	if *rotX != 0 || *rotY != 0 {
		v.SetRotationOffset(*rotX, *rotY)
	}

	ls := v.RecomputeLayout()
	if *front {
		kept := ls[:0]
		for _, l := range ls {
			if l.FrontFacing {
				kept = append(kept, l)
			}
		}
		ls = kept
	}

	if *asJSON {
		out := struct {
			Snapshot sphereview.Snapshot    `json:"snapshot"`
			Layouts  []layout.ElementLayout `json:"layouts"`
		}{v.Snapshot(), ls}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	q := v.Rotation()
	c := v.Center()
	fmt.Printf("Elements: %d, Radius: %.2f, Center: (%.1f, %.1f)\n", cfg.ElementCount, v.Radius(), c.X, c.Y)
	fmt.Printf("Rotation: x=%.6f y=%.6f z=%.6f w=%.6f (%.2f°)\n", q[0], q[1], q[2], q[3],
		mathutil.Rad2Deg(2*math.Acos(math.Min(math.Abs(q[3]), 1))))
	printMat3(q.Mat3())

	fmt.Printf("\n%5s %5s %9s %9s %7s %7s %7s %s\n", "elem", "point", "x", "y", "scale", "alpha", "depth", "front")
	for _, l := range ls {
		fmt.Printf("%5d %5d %9.2f %9.2f %7.3f %7.3f %7.3f %v\n",
			l.Index, l.PointIndex, l.Position.X, l.Position.Y, l.Scale, l.Opacity, l.Depth, l.FrontFacing)
	}
	fmt.Printf("\nFront-facing: %d\n", layout.FrontFacingCount(ls))
}

func printMat3(m mathutil.Mat3) {
	for r := 0; r < 3; r++ {
		fmt.Printf("  [%8.4f %8.4f %8.4f]\n", m[r*3], m[r*3+1], m[r*3+2])
	}
}
