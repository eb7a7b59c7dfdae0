// Package blit copies pixel data from flat buffers and source images onto a fixed-size RGB surface.
//
// Sources are clipped against the surface on all four edges before any pixel is decoded, so a
// [Surface] never sees out-of-range coordinates from this package.
package blit

import (
	"image"

	"github.com/BeatGlow/rgbmatrix/pixel"
)

// Surface is the write side of a grid of RGB cells.
type Surface interface {
	// Width of the surface in cells.
	Width() int

	// Height of the surface in cells.
	Height() int

	// SetPixel sets the cell at (x, y).
	SetPixel(x, y int, r, g, b uint8)
}

// Blit draws src onto dst with the source origin placed at at, which may be negative or beyond
// the surface. It returns the surface rectangle that was written; the rectangle is empty when
// nothing of src is visible or its format is not supported.
func Blit(dst Surface, src Source, at image.Point) image.Rectangle {
	c := ClipRect(src.Size(), image.Pt(dst.Width(), dst.Height()), at)
	if c.Empty() {
		return image.Rectangle{}
	}

	switch src.Format() {
	case TrueColor:
		s, ok := src.(TrueColorSource)
		if !ok {
			return image.Rectangle{}
		}
		for y := 0; y < c.Size.Y; y++ {
			for x := 0; x < c.Size.X; x++ {
				// Little-endian load of R,G,B,A bytes: the packed value reads B,G,R from high to low.
				b, g, r := pixel.Unpack24(s.PixelRGB(c.Src.X+x, c.Src.Y+y))
				dst.SetPixel(c.Dst.X+x, c.Dst.Y+y, r, g, b)
			}
		}

	case Bitmap1:
		s, ok := src.(BitmapSource)
		if !ok {
			return image.Rectangle{}
		}
		for y := 0; y < c.Size.Y; y++ {
			for x := 0; x < c.Size.X; x++ {
				var v uint8
				if s.PixelBit(c.Src.X+x, c.Src.Y+y) {
					v = 0xff
				}
				dst.SetPixel(c.Dst.X+x, c.Dst.Y+y, v, v, v)
			}
		}

	case Palette8:
		s, ok := src.(PaletteSource)
		if !ok {
			return image.Rectangle{}
		}
		pal := s.Palette()
		for y := 0; y < c.Size.Y; y++ {
			for x := 0; x < c.Size.X; x++ {
				i := int(s.PixelIndex(c.Src.X+x, c.Src.Y+y)) * PaletteStride
				dst.SetPixel(c.Dst.X+x, c.Dst.Y+y, pal[i], pal[i+1], pal[i+2])
			}
		}

	default:
		return image.Rectangle{}
	}

	return c.Rect()
}

// Supported reports whether [Blit] can decode src.
func Supported(src Source) bool {
	switch src.Format() {
	case TrueColor:
		_, ok := src.(TrueColorSource)
		return ok
	case Bitmap1:
		_, ok := src.(BitmapSource)
		return ok
	case Palette8:
		_, ok := src.(PaletteSource)
		return ok
	default:
		return false
	}
}
