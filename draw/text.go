package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size used by [NewFace] when size is zero. At 72 DPI
// one point is one LED, so the default fits two lines on a 16 row panel.
const DefaultFontSize = 8

// NewFace returns a Go Regular font face of the given point size at 72 DPI.
// The caller must Close the face.
func NewFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// MeasureText returns the pixel size of s rendered with face.
func MeasureText(face font.Face, s string) image.Point {
	m := face.Metrics()
	return image.Point{
		X: font.MeasureString(face, s).Ceil(),
		Y: (m.Ascent + m.Descent).Ceil(),
	}
}

// Text draws s onto dst with its top-left corner at pt.
func Text(dst Image, pt image.Point, face font.Face, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextImage renders s in c over a transparent background into a new image sized to fit.
func TextImage(face font.Face, c color.Color, s string) *image.RGBA {
	m := image.NewRGBA(image.Rectangle{Max: MeasureText(face, s)})
	Text(m, image.Point{}, face, c, s)
	return m
}
