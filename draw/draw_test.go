package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func lit(m *image.RGBA) (n int) {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return
}

func TestLine(t *testing.T) {
	tests := []struct {
		a, b image.Point
		n    int
	}{
		{image.Pt(0, 0), image.Pt(0, 0), 1},
		{image.Pt(0, 0), image.Pt(7, 0), 8},
		{image.Pt(3, 7), image.Pt(3, 0), 8},
		{image.Pt(0, 0), image.Pt(7, 7), 8},
		{image.Pt(7, 0), image.Pt(0, 7), 8},
		{image.Pt(0, 0), image.Pt(7, 3), 8},
	}
	for _, test := range tests {
		m := image.NewRGBA(image.Rect(0, 0, 8, 8))
		Line(m, test.a, test.b, white)
		assert.Equal(t, test.n, lit(m), "line %s-%s", test.a, test.b)
		assert.Equal(t, white, m.RGBAAt(test.a.X, test.a.Y))
		assert.Equal(t, white, m.RGBAAt(test.b.X, test.b.Y))
	}
}

func TestRectangle(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Rectangle(m, image.Rect(1, 1, 5, 4), white)
	assert.Equal(t, 10, lit(m))
	assert.Equal(t, white, m.RGBAAt(4, 3))
	assert.Equal(t, color.RGBA{}, m.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{}, m.RGBAAt(5, 4))
}

func TestBox(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Box(m, image.Rect(2, 2, 6, 5), white)
	assert.Equal(t, 12, lit(m))
}

func TestFit(t *testing.T) {
	tests := []struct {
		src, size, want image.Point
	}{
		{image.Pt(10, 10), image.Pt(32, 32), image.Pt(10, 10)},
		{image.Pt(64, 32), image.Pt(32, 32), image.Pt(32, 16)},
		{image.Pt(32, 128), image.Pt(64, 32), image.Pt(8, 32)},
	}
	for _, test := range tests {
		m := Fit(image.NewNRGBA(image.Rectangle{Max: test.src}), test.size)
		assert.Equal(t, test.want, m.Bounds().Size(), "fit %s in %s", test.src, test.size)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(4, 4, 8, 6))
	src.SetGray(5, 5, color.Gray{Y: 0x80})
	m := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), m.Bounds())
	assert.Equal(t, color.RGBA{0x80, 0x80, 0x80, 0xff}, m.RGBAAt(1, 1))
}

func TestTextImage(t *testing.T) {
	face, err := NewFace(0)
	require.NoError(t, err)
	defer face.Close()

	size := MeasureText(face, "Hi")
	assert.Positive(t, size.X)
	assert.Positive(t, size.Y)

	m := TextImage(face, white, "Hi")
	assert.Equal(t, size, m.Bounds().Size())
	assert.Positive(t, lit(m))
}
