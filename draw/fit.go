package draw

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fit scales src to fit within size, keeping the aspect ratio. Images that already fit are
// converted to RGBA without scaling.
func Fit(src image.Image, size image.Point) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > size.X || h > size.Y {
		if w*size.Y > h*size.X {
			w, h = size.X, max(1, h*size.X/w)
		} else {
			w, h = max(1, w*size.Y/h), size.Y
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}
	return dst
}

// ToRGBA converts src into a new RGBA image at the origin.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
