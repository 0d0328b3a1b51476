package raster

import (
	"image"
	"image/color"
	"math"

	"sphereview/internal/layout"
	"sphereview/internal/texture"
)

// Options controls frame compositing.
type Options struct {
	Width       int         // output width before supersampling
	Height      int         // output height before supersampling
	Supersample int         // render scale factor, at least 1
	ElementSize float64     // base sprite edge length at scale 1
	Background  color.NRGBA // fill color; zero is transparent
}

// RenderFrame composites one layout pass into an image of
// Width*Supersample by Height*Supersample pixels. Elements are drawn back
// to front; each sprite is resized by the element's scale and its alpha is
// multiplied by the element's opacity.
func RenderFrame(layouts []layout.ElementLayout, sprites texture.Resolver, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	fb := NewFrameBuffer(opts.Width*ss, opts.Height*ss, opts.Background)
	if len(layouts) == 0 || sprites == nil || opts.ElementSize <= 0 {
		return fb.Image()
	}

	for _, i := range layout.DrawOrder(layouts) {
		l := layouts[i]
		tex := sprites.Resolve(l.Index)
		if tex == nil {
			continue
		}
		size := opts.ElementSize * l.Scale * float64(ss)
		cx := l.Position.X * float64(ss)
		cy := l.Position.Y * float64(ss)
		drawSprite(fb, tex, cx, cy, size, l.Opacity)
	}

	return fb.Image()
}

// drawSprite draws tex as a size×size square centered on (cx, cy).
func drawSprite(fb *FrameBuffer, tex *image.NRGBA, cx, cy, size, opacity float64) {
	if size <= 0 || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	x0 := cx - size/2
	y0 := cy - size/2

	// Pixel-center bounding box, clipped to the buffer.
	minX := max(int(math.Floor(x0)), 0)
	minY := max(int(math.Floor(y0)), 0)
	maxX := min(int(math.Ceil(x0+size)), fb.Width)
	maxY := min(int(math.Ceil(y0+size)), fb.Height)

	for y := minY; y < maxY; y++ {
		v := (float64(y) + 0.5 - y0) / size
		if v < 0 || v > 1 {
			continue
		}
		for x := minX; x < maxX; x++ {
			u := (float64(x) + 0.5 - x0) / size
			if u < 0 || u > 1 {
				continue
			}
			r, g, b, a := SampleSprite(tex, u, v)
			if a == 0 {
				continue
			}
			fb.Blend(x, y, r, g, b, float64(a)/255*opacity)
		}
	}
}
