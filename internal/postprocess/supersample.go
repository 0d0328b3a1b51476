package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to width×height.
//
// The scaler works on premultiplied color, so scaling into an RGBA frame
// keeps transparent sprite edges free of dark fringes; the result is
// converted back to straight alpha. CatmullRom approximates Lanczos.
// Frames already within the target size are returned unchanged.
func Downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() <= width && b.Dy() <= height) {
		return img
	}

	target := image.Rect(0, 0, width, height)
	premul := image.NewRGBA(target)
	draw.CatmullRom.Scale(premul, target, img, b, draw.Src, nil)

	out := image.NewNRGBA(target)
	draw.Draw(out, target, premul, image.Point{}, draw.Src)
	return out
}
