package main

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sphereview/internal/gesture"
	"sphereview/internal/layout"
	"sphereview/internal/monitoring"
	"sphereview/internal/sphereview"
	"sphereview/internal/texture"
)

const (
	// wheelStep is the radius factor per wheel notch.
	wheelStep = 1.1
	// tapSlop is how far a pointer may travel and still count as a tap.
	tapSlop = 4.0
)

type gameConfig struct {
	width, height int
	elementSize   float64
	background    color.NRGBA
}

// game is the ebiten host for a View. Update feeds input to the view and
// advances its frame scheduler; Draw pulls a new layout pass only when the
// view version changed.
type game struct {
	view    *sphereview.View
	sprites texture.Resolver
	cfg     gameConfig

	images map[*image.NRGBA]*ebiten.Image

	layouts []layout.ElementLayout
	version uint64
	fresh   bool

	// pan
	dragging bool
	dragTID  ebiten.TouchID
	touchPan bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	tracker  gesture.VelocityTracker

	// pinch
	pinching  bool
	pinchDist float64
	pinchLast float64

	touchIDs []ebiten.TouchID
}

func newGame(v *sphereview.View, sprites texture.Resolver, cfg gameConfig) *game {
	return &game{
		view:    v,
		sprites: sprites,
		cfg:     cfg,
		images:  make(map[*image.NRGBA]*ebiten.Image),
	}
}

func (g *game) Update() error {
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.view.ResetTransform()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		r := g.view.AutoFitRadius(float64(g.cfg.width), g.cfg.elementSize)
		monitoring.Debugf("sphereview: auto-fit radius %.1f", r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.view.SetOpacityAdjustmentEnabled(!g.view.OpacityAdjustmentEnabled())
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) >= 2 {
		g.updatePinch()
	} else {
		g.endPinch()
		g.updatePan(now)
	}
	g.updateWheel()

	g.view.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// updatePan drives a pan from the left mouse button or a single touch.
func (g *game) updatePan(now time.Time) {
	if !g.dragging {
		switch {
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
			x, y := ebiten.CursorPosition()
			g.beginPan(now, float64(x), float64(y), false, 0)
		case len(g.touchIDs) == 1:
			id := g.touchIDs[0]
			x, y := ebiten.TouchPosition(id)
			g.beginPan(now, float64(x), float64(y), true, id)
		}
		return
	}

	var x, y int
	released := false
	if g.touchPan {
		if inpututil.IsTouchJustReleased(g.dragTID) {
			released = true
		} else {
			x, y = ebiten.TouchPosition(g.dragTID)
		}
	} else {
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			released = true
		} else {
			x, y = ebiten.CursorPosition()
		}
	}

	if released {
		vx, vy := g.tracker.Velocity()
		g.dragging = false
		g.view.OnPanEnd(vx, vy)
		if math.Hypot(g.lastX-g.startX, g.lastY-g.startY) <= tapSlop {
			g.tap(g.lastX, g.lastY)
		}
		return
	}

	fx, fy := float64(x), float64(y)
	g.view.OnPanDelta(fx-g.lastX, fy-g.lastY)
	g.lastX, g.lastY = fx, fy
	g.tracker.Add(now, fx, fy)
}

func (g *game) beginPan(now time.Time, x, y float64, touch bool, id ebiten.TouchID) {
	g.dragging = true
	g.touchPan = touch
	g.dragTID = id
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
	g.tracker.Reset()
	g.tracker.Add(now, x, y)
	g.view.OnPanBegin()
}

// tap reports the topmost front-facing element under a tap.
func (g *game) tap(x, y float64) {
	if i := layout.HitTest(g.layouts, layout.Point{X: x, Y: y}, g.cfg.elementSize); i >= 0 {
		monitoring.Logf("sphereview: tapped element %d", i)
	}
}

// updatePinch drives a pinch from the first two touches. A pan in progress
// ends without decay.
func (g *game) updatePinch() {
	if g.dragging {
		g.dragging = false
		g.view.OnPanEnd(0, 0)
	}
	x0, y0 := ebiten.TouchPosition(g.touchIDs[0])
	x1, y1 := ebiten.TouchPosition(g.touchIDs[1])
	dist := math.Hypot(float64(x1-x0), float64(y1-y0))

	if !g.pinching {
		g.pinching = true
		g.pinchDist = dist
		g.pinchLast = 1
		g.view.OnPinchBegin()
		return
	}
	g.pinchLast = gesture.PinchScale(g.pinchDist, dist)
	g.view.OnPinchChanged(g.pinchLast)
}

func (g *game) endPinch() {
	if !g.pinching {
		return
	}
	g.pinching = false
	g.view.OnPinchEnd(g.pinchLast)
}

// updateWheel maps each wheel notch to a one-shot pinch.
func (g *game) updateWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 || g.pinching {
		return
	}
	g.view.OnPinchBegin()
	g.view.OnPinchEnd(math.Pow(wheelStep, wy))
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.background)

	if v := g.view.Version(); !g.fresh || v != g.version {
		g.layouts = g.view.RecomputeLayout()
		g.version = v
		g.fresh = true
	}

	for _, i := range layout.DrawOrder(g.layouts) {
		l := g.layouts[i]
		img := g.spriteImage(l.Index)
		if img == nil {
			continue
		}
		b := img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())
		side := g.cfg.elementSize * l.Scale

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(side/w, side/h)
		op.GeoM.Translate(l.Position.X, l.Position.Y)
		op.ColorScale.ScaleAlpha(float32(math.Min(l.Opacity, 1)))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func (g *game) spriteImage(element int) *ebiten.Image {
	src := g.sprites.Resolve(element)
	if src == nil {
		return nil
	}
	if img, ok := g.images[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	g.images[src] = img
	return img
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.width, g.cfg.height
}
