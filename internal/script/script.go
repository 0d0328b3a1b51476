// Package script replays recorded host events against a sphere view.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"sphereview/internal/layout"
	"sphereview/internal/sphereview"
)

// Event types.
const (
	PanBegin       = "pan_begin"
	Pan            = "pan"
	PanTranslation = "pan_translation"
	PanEnd         = "pan_end"
	PinchBegin     = "pinch_begin"
	Pinch          = "pinch"
	PinchEnd       = "pinch_end"
	Tick           = "tick"
	Settle         = "settle"
	ResetRotation  = "reset_rotation"
	ResetZoom      = "reset_zoom"
	ResetTransform = "reset_transform"
	AutoFit        = "auto_fit"
	Rotate         = "rotate"
	Radius         = "radius"
	Elements       = "elements"
	Opacity        = "opacity"
)

// ErrUnknownEvent is returned for an event type Run does not know.
var ErrUnknownEvent = errors.New("script: unknown event")

// Event is one host event. Only the fields of its type are read.
type Event struct {
	Type  string  `json:"type"`
	DX    float64 `json:"dx,omitempty"`
	DY    float64 `json:"dy,omitempty"`
	VX    float64 `json:"vx,omitempty"`
	VY    float64 `json:"vy,omitempty"`
	Scale float64 `json:"scale,omitempty"`
	N     int     `json:"n,omitempty"`
	Width float64 `json:"width,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Value float64 `json:"value,omitempty"`
	On    bool    `json:"on,omitempty"`
}

// Script is a named event list.
type Script struct {
	Name   string  `json:"name"`
	Events []Event `json:"events"`
}

// Parse decodes a script from JSON.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("script: decode: %w", err)
	}
	for i, e := range s.Events {
		if !known(e.Type) {
			return Script{}, fmt.Errorf("%w %q at event %d", ErrUnknownEvent, e.Type, i)
		}
	}
	return s, nil
}

// Load reads and parses a script file.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func known(t string) bool {
	switch t {
	case PanBegin, Pan, PanTranslation, PanEnd, PinchBegin, Pinch, PinchEnd,
		Tick, Settle, ResetRotation, ResetZoom, ResetTransform, AutoFit,
		Rotate, Radius, Elements, Opacity:
		return true
	}
	return false
}

// Frame is the layout pass captured after an event or a tick.
type Frame struct {
	Index    int                    `json:"index"`
	Event    string                 `json:"event"`
	Layouts  []layout.ElementLayout `json:"layouts"`
	Snapshot sphereview.Snapshot    `json:"snapshot"`
}

// Options bounds a replay.
type Options struct {
	// Interval is the frame period used for tick events.
	Interval time.Duration
	// MaxFrames stops the replay once this many frames were captured.
	MaxFrames int
}

// Run replays s against v, which must own its frame scheduler, and
// returns one frame per event plus one per tick.
func Run(v *sphereview.View, s Script, opts Options) ([]Frame, error) {
	if opts.Interval <= 0 {
		opts.Interval = 16 * time.Millisecond
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 600
	}

	var frames []Frame
	capture := func(event string) bool {
		frames = append(frames, Frame{
			Index:    len(frames),
			Event:    event,
			Layouts:  v.RecomputeLayout(),
			Snapshot: v.Snapshot(),
		})
		return len(frames) < opts.MaxFrames
	}

	for i, e := range s.Events {
		switch e.Type {
		case PanBegin:
			v.OnPanBegin()
		case Pan:
			v.OnPanDelta(e.DX, e.DY)
		case PanTranslation:
			v.OnPanTranslation(e.DX, e.DY)
		case PanEnd:
			v.OnPanEnd(e.VX, e.VY)
		case PinchBegin:
			v.OnPinchBegin()
		case Pinch:
			v.OnPinchChanged(e.Scale)
		case PinchEnd:
			v.OnPinchEnd(e.Scale)
		case ResetRotation:
			v.ResetRotation()
		case ResetZoom:
			v.ResetZoom()
		case ResetTransform:
			v.ResetTransform()
		case AutoFit:
			v.AutoFitRadius(e.Width, e.Size)
		case Rotate:
			v.SetRotationOffset(e.DX, e.DY)
		case Radius:
			v.SetRadius(e.Value)
		case Elements:
			v.SetElementCount(e.N)
		case Opacity:
			v.SetOpacityAdjustmentEnabled(e.On)
		case Tick:
			n := e.N
			if n <= 0 {
				n = 1
			}
			for k := 0; k < n; k++ {
				v.Advance(opts.Interval)
				if !capture(Tick) {
					return frames, nil
				}
			}
			continue
		case Settle:
			for v.Decelerating() {
				v.Advance(opts.Interval)
				if !capture(Settle) {
					return frames, nil
				}
			}
			continue
		default:
			return frames, fmt.Errorf("%w %q at event %d", ErrUnknownEvent, e.Type, i)
		}
		if !capture(e.Type) {
			return frames, nil
		}
	}
	return frames, nil
}

// Demo is the built-in script: a flick, the decay that follows, a pinch
// and a reset.
func Demo() Script {
	s := Script{Name: "demo"}
	s.Events = append(s.Events, Event{Type: PanBegin})
	for i := 0; i < 12; i++ {
		s.Events = append(s.Events, Event{Type: Pan, DX: -6, DY: 2})
	}
	s.Events = append(s.Events,
		Event{Type: PanEnd, VX: -900, VY: 300},
		Event{Type: Settle},
		Event{Type: PinchBegin},
		Event{Type: Pinch, Scale: 1.2},
		Event{Type: Pinch, Scale: 1.4},
		Event{Type: PinchEnd, Scale: 1.4},
		Event{Type: Tick, N: 10},
		Event{Type: ResetTransform},
	)
	return s
}
