package raster

import (
	"image"
	"image/color"
)

// FrameBuffer holds the compositing target as a flat NRGBA slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4, straight alpha
}

// NewFrameBuffer allocates a buffer filled with bg.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
	if bg != (color.NRGBA{}) {
		for i := 0; i < len(fb.Color); i += 4 {
			fb.Color[i] = bg.R
			fb.Color[i+1] = bg.G
			fb.Color[i+2] = bg.B
			fb.Color[i+3] = bg.A
		}
	}
	return fb
}

// Blend composites a straight-alpha color over the pixel at (x, y) with
// source-over. alpha is the source coverage in [0, 1] already multiplied
// by the element opacity.
func (fb *FrameBuffer) Blend(x, y int, r, g, b uint8, alpha float64) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	i := (y*fb.Width + x) * 4
	da := float64(fb.Color[i+3]) / 255
	outA := alpha + da*(1-alpha)
	if outA <= 0 {
		return
	}
	k := da * (1 - alpha)
	fb.Color[i] = clamp255((float64(r)*alpha + float64(fb.Color[i])*k) / outA)
	fb.Color[i+1] = clamp255((float64(g)*alpha + float64(fb.Color[i+1])*k) / outA)
	fb.Color[i+2] = clamp255((float64(b)*alpha + float64(fb.Color[i+2])*k) / outA)
	fb.Color[i+3] = clamp255(outA * 255)
}

// Image copies the buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
