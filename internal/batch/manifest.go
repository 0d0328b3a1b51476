package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"sphereview/internal/layout"
	"sphereview/internal/script"
)

// Manifest describes a rendered frame sequence.
type Manifest struct {
	Script      string          `json:"script,omitempty"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	WebPQuality int             `json:"webp_quality"`
	Frames      []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame        int     `json:"frame"`
	File         string  `json:"file,omitempty"`
	Event        string  `json:"event"`
	Decelerating bool    `json:"decelerating"`
	FrontFacing  int     `json:"front_facing"`
	Radius       float64 `json:"radius"`
	Error        string  `json:"error,omitempty"`
}

// BuildManifest pairs frames with their batch results. results may be nil
// or shorter than frames when nothing was encoded.
func BuildManifest(name string, cfg Config, frames []script.Frame, results []Result) Manifest {
	m := Manifest{
		Script:      name,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		WebPQuality: cfg.WebPQuality,
		Frames:      make([]ManifestEntry, len(frames)),
	}
	for i, f := range frames {
		e := ManifestEntry{
			Frame:        f.Index,
			Event:        f.Event,
			Decelerating: f.Snapshot.Decelerating,
			FrontFacing:  layout.FrontFacingCount(f.Layouts),
			Radius:       f.Snapshot.Radius,
		}
		if i < len(results) {
			if results[i].Success {
				e.File = results[i].File
			} else {
				e.Error = results[i].Error
			}
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
