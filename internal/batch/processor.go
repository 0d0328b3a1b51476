package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sphereview/internal/layout"
	"sphereview/internal/monitoring"
	"sphereview/internal/postprocess"
	"sphereview/internal/raster"
	"sphereview/internal/script"
	"sphereview/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Sprites     texture.Resolver
	Render      raster.Options
	WebPQuality int
	Workers     int
	// Progress is the reporting period; zero disables progress lines.
	Progress time.Duration
}

// Result holds the outcome of encoding one frame.
type Result struct {
	Index   int
	File    string // path relative to OutputDir
	Success bool
	Error   string
}

// FrameFile returns the output file name for frame i.
func FrameFile(i int) string {
	return fmt.Sprintf("frame_%04d.webp", i)
}

// Run renders and encodes all frames using a worker pool. Results are
// returned in frame order; a failed frame does not stop the others.
func Run(cfg Config, frames []script.Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	if total == 0 {
		return results
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
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
						monitoring.Logf("  [%d/%d] %.1f frames/sec", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, frame script.Frame) Result {
	res := Result{Index: frame.Index, File: FrameFile(frame.Index)}

	img := raster.RenderFrame(frame.Layouts, cfg.Sprites, cfg.Render)

	// Post-processing: supersample downsample
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Width, cfg.Render.Height)
	}

	outPath := filepath.Join(cfg.OutputDir, res.File)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("batch: webp encode frame %d: %v", frame.Index, err)
		return res
	}

	monitoring.Debugf("batch: frame %d (%s) front-facing %d", frame.Index, frame.Event, layout.FrontFacingCount(frame.Layouts))
	res.Success = true
	return res
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}
