package rgbmatrix

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/rgbmatrix/blit"
	"github.com/BeatGlow/rgbmatrix/hat"
	"github.com/BeatGlow/rgbmatrix/panel"
	"github.com/BeatGlow/rgbmatrix/pixel"
)

// memSurface is an in-memory surface that counts writes.
type memSurface struct {
	*pixel.RGBImage
	writes  int
	pwmBits uint8
}

func newMemSurface(w, h int) *memSurface {
	return &memSurface{RGBImage: pixel.NewRGBImage(w, h)}
}

func (s *memSurface) Width() int  { return s.Rect.Dx() }
func (s *memSurface) Height() int { return s.Rect.Dy() }

func (s *memSurface) SetPixel(x, y int, r, g, b uint8) {
	s.writes++
	s.SetRGB(x, y, r, g, b)
}

func (s *memSurface) Fill(r, g, b uint8) { s.FillRGB(r, g, b) }

func (s *memSurface) SetPWMBits(bits uint8) error {
	if bits > panel.MaxPWMBits {
		return panel.ErrPWMBits
	}
	s.pwmBits = bits
	return nil
}

func (s *memSurface) rgb(x, y int) [3]uint8 {
	r, g, b := s.RGBAt(x, y)
	return [3]uint8{r, g, b}
}

func testMatrix(t *testing.T) (*Matrix, *memSurface) {
	t.Helper()
	s := newMemSurface(32, 32)
	s.FillRGB(1, 1, 1)
	m := New(s)
	require.Equal(t, [3]uint8{}, s.rgb(5, 5), "New must clear the surface")
	return m, s
}

func TestClear(t *testing.T) {
	m, s := testMatrix(t)
	m.Fill(Packed(0xffffff))

	r := m.Clear()
	assert.Equal(t, OK, r.Diagnostic)
	once := bytes.Clone(s.Pix)

	m.Clear()
	assert.Equal(t, once, s.Pix)
	assert.Equal(t, make([]byte, 32*32*3), s.Pix)
}

func TestFill(t *testing.T) {
	m, s := testMatrix(t)

	r := m.Fill(Packed(0x6f85ff))
	require.NoError(t, r.Err())
	assert.Equal(t, m.Bounds(), r.Rect)
	assert.Equal(t, [3]uint8{0x6f, 0x85, 0xff}, s.rgb(31, 31))

	m.Fill(RGB{1, 2, 3})
	assert.Equal(t, [3]uint8{1, 2, 3}, s.rgb(0, 0))

	r = m.Fill(nil)
	assert.Equal(t, InvalidArguments, r.Diagnostic)
	assert.ErrorIs(t, r.Err(), ErrInvalidArguments)
	assert.Equal(t, [3]uint8{1, 2, 3}, s.rgb(0, 0))
}

func TestSetPixel(t *testing.T) {
	m, s := testMatrix(t)

	r := m.SetPixel(3, 4, Packed(0x102030))
	require.NoError(t, r.Err())
	assert.Equal(t, image.Rect(3, 4, 4, 5), r.Rect)
	assert.Equal(t, [3]uint8{0x10, 0x20, 0x30}, s.rgb(3, 4))

	m.SetPixel(31, 31, RGB{7, 8, 9})
	assert.Equal(t, [3]uint8{7, 8, 9}, s.rgb(31, 31))

	writes := s.writes
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {32, 0}, {0, 32}} {
		r = m.SetPixel(p.X, p.Y, RGB{})
		assert.Equal(t, InvalidArguments, r.Diagnostic, "pixel %s", p)
	}
	r = m.SetPixel(0, 0, nil)
	assert.ErrorIs(t, r.Err(), ErrInvalidArguments)
	assert.Equal(t, writes, s.writes)
}

func TestSetBuffer(t *testing.T) {
	m, s := testMatrix(t)

	buf := make([]byte, 32*32*3)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	require.NoError(t, m.SetBuffer(buf))
	assert.Equal(t, buf, s.Pix)

	s.writes = 0
	assert.ErrorIs(t, m.SetBuffer(buf[:len(buf)-1]), ErrSizeMismatch)
	assert.ErrorIs(t, m.SetBuffer(nil), ErrSizeMismatch)
	assert.ErrorIs(t, m.SetBuffer(append(buf, 0)), ErrSizeMismatch)
	assert.Zero(t, s.writes)
}

func testImage(w, h int) blit.Source {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return blit.FromImage(m)
}

func TestSetImage(t *testing.T) {
	tests := []struct {
		name string
		size image.Point
		at   image.Point
		want image.Rectangle
	}{
		{"default offset", image.Pt(10, 10), image.Point{}, image.Rect(0, 0, 10, 10)},
		{"clip bottom-right", image.Pt(10, 10), image.Pt(30, 30), image.Rect(30, 30, 32, 32)},
		{"clip left", image.Pt(10, 10), image.Pt(-5, 0), image.Rect(0, 0, 5, 10)},
		{"oversized", image.Pt(40, 40), image.Point{}, image.Rect(0, 0, 32, 32)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, s := testMatrix(t)
			r := m.SetImage(testImage(test.size.X, test.size.Y), test.at)
			assert.Equal(t, OK, r.Diagnostic)
			assert.Equal(t, test.want, r.Rect)
			assert.Equal(t, test.want.Dx()*test.want.Dy(), s.writes)
		})
	}
}

func TestSetImageDiagnostics(t *testing.T) {
	m, s := testMatrix(t)

	r := m.SetImage(testImage(10, 10), image.Pt(100, 0))
	assert.Equal(t, NothingVisible, r.Diagnostic)
	assert.NoError(t, r.Err())

	r = m.SetImage(blit.FromImage(image.NewGray16(image.Rect(0, 0, 4, 4))), image.Point{})
	assert.Equal(t, UnsupportedFormat, r.Diagnostic)
	assert.NoError(t, r.Err())

	r = m.SetImage(nil, image.Point{})
	assert.Equal(t, InvalidArguments, r.Diagnostic)
	assert.Error(t, r.Err())

	assert.Zero(t, s.writes)
}

func TestSetImageFormats(t *testing.T) {
	m, s := testMatrix(t)

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(rgba.Pix, []byte{0xaa, 0xbb, 0xcc, 0xff})
	m.SetImage(blit.FromImage(rgba), image.Pt(0, 0))
	assert.Equal(t, [3]uint8{0xaa, 0xbb, 0xcc}, s.rgb(0, 0))

	mono := pixel.NewMonoImage(1, 1)
	mono.Set(0, 0, pixel.On)
	m.SetImage(blit.FromImage(mono), image.Pt(1, 0))
	assert.Equal(t, [3]uint8{0xff, 0xff, 0xff}, s.rgb(1, 0))

	pal := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{
		color.RGBA{0, 0, 0, 0xff},
		color.RGBA{10, 20, 30, 0xff},
		color.RGBA{40, 50, 60, 0xff},
	})
	pal.SetColorIndex(0, 0, 2)
	m.SetImage(blit.FromImage(pal), image.Pt(2, 0))
	assert.Equal(t, [3]uint8{40, 50, 60}, s.rgb(2, 0))
}

func TestSetPWMBits(t *testing.T) {
	m, s := testMatrix(t)

	r := m.SetPWMBits(7)
	assert.NoError(t, r.Err())
	assert.Equal(t, uint8(7), s.pwmBits)

	r = m.SetPWMBits(12)
	assert.Equal(t, InvalidArguments, r.Diagnostic)
	assert.ErrorIs(t, r.Err(), ErrInvalidArguments)
	assert.Equal(t, uint8(7), s.pwmBits)
}

func testLines(t *testing.T) (*hat.IO, *gpiotest.Pin) {
	t.Helper()
	oe := &gpiotest.Pin{N: "GPIO4", Num: 4}
	pin := func(n string) *gpiotest.Pin { return &gpiotest.Pin{N: n} }
	lines, err := hat.New(hat.Pins{
		R1: pin("GPIO5"), G1: pin("GPIO13"), B1: pin("GPIO6"),
		R2: pin("GPIO12"), G2: pin("GPIO16"), B2: pin("GPIO23"),
		A: pin("GPIO22"), B: pin("GPIO26"), C: pin("GPIO27"), D: pin("GPIO20"),
		Clock: pin("GPIO17"), Latch: pin("GPIO21"), OE: oe,
	})
	require.NoError(t, err)
	return lines, oe
}

func TestOpen(t *testing.T) {
	lines, oe := testLines(t)
	m, err := Open(lines, &Config{Rows: 16, Chain: 2, PWMBits: 8})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 16), m.Bounds())

	p, ok := m.Surface().(*panel.Panel)
	require.True(t, ok)
	assert.Equal(t, uint8(8), p.PWMBits())

	m.Fill(Packed(0xff0000))
	r, g, b := p.RGBAt(63, 15)
	assert.Equal(t, [3]uint8{0xff, 0, 0}, [3]uint8{r, g, b})

	require.NoError(t, lines.Blank(false))
	require.NoError(t, m.Close())
	assert.Equal(t, gpio.High, oe.Read())
}

func TestOpenDefault(t *testing.T) {
	lines, _ := testLines(t)
	m, err := Open(lines, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), m.Bounds())
}

func TestOpenZeroConfig(t *testing.T) {
	lines, _ := testLines(t)
	m, err := Open(lines, &Config{Rows: 16})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), m.Bounds())

	m, err = Open(lines, &Config{Chain: 2})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), m.Bounds())

	m, err = Open(lines, &Config{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), m.Bounds())
}

func TestOpenInvalid(t *testing.T) {
	lines, _ := testLines(t)
	_, err := Open(lines, &Config{Rows: 31, Chain: 1})
	assert.ErrorIs(t, err, panel.ErrRows)
	_, err = Open(lines, &Config{Rows: 32, Chain: -1})
	assert.ErrorIs(t, err, panel.ErrChain)
	_, err = Open(lines, &Config{Rows: 32, Chain: 1, PWMBits: 12})
	assert.ErrorIs(t, err, panel.ErrPWMBits)
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "nothing visible", NothingVisible.String())
	assert.Equal(t, "unsupported format", UnsupportedFormat.String())
	assert.Equal(t, "invalid arguments", InvalidArguments.String())
}
