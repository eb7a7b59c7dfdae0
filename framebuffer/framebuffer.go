// Package framebuffer mirrors a matrix surface onto the operating system's native framebuffer.
//
// Every LED cell is drawn as a square block of framebuffer pixels, which makes it possible to
// develop and demo matrix content on a regular screen. This requires framebuffer device support
// in the operating system; on other systems [Open] returns [ErrNotSupported].
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/rgbmatrix/draw"
	"github.com/BeatGlow/rgbmatrix/pixel"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrGeometry     = errors.New("framebuffer: matrix does not fit the screen")
	ErrPWMBits      = errors.New("framebuffer: PWM bits must be between 1 and 11")
)

// Config is the mirrored matrix geometry.
type Config struct {
	// Width and Height of the matrix in cells.
	Width, Height int

	// Scale is the block size in screen pixels per cell; 0 picks the largest that fits.
	Scale int
}

// Mirror is a matrix surface drawn on a framebuffer.
type Mirror struct {
	dst     draw.Image
	origin  image.Point
	width   int
	height  int
	scale   int
	pwmBits uint8
	release func() error
}

func newMirror(dst draw.Image, config Config, release func() error) (*Mirror, error) {
	screen := dst.Bounds().Size()
	if config.Width < 1 || config.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, config.Width, config.Height)
	}
	scale := config.Scale
	if scale == 0 {
		scale = min(screen.X/config.Width, screen.Y/config.Height)
	}
	if scale < 1 || config.Width*scale > screen.X || config.Height*scale > screen.Y {
		return nil, fmt.Errorf("%w: %dx%d at scale %d on %s", ErrGeometry, config.Width, config.Height, scale, screen)
	}

	m := &Mirror{
		dst:     dst,
		width:   config.Width,
		height:  config.Height,
		scale:   scale,
		pwmBits: 11,
		release: release,
	}
	// Center the matrix on the screen.
	m.origin = dst.Bounds().Min.Add(image.Point{
		X: (screen.X - m.width*scale) / 2,
		Y: (screen.Y - m.height*scale) / 2,
	})
	return m, nil
}

func (m *Mirror) String() string {
	return fmt.Sprintf("framebuffer mirror %dx%d at %dx scale", m.width, m.height, m.scale)
}

// Width in cells.
func (m *Mirror) Width() int {
	return m.width
}

// Height in cells.
func (m *Mirror) Height() int {
	return m.height
}

// SetPixel draws one cell. Writes outside the matrix are ignored.
func (m *Mirror) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	p := m.origin.Add(image.Pt(x*m.scale, y*m.scale))
	draw.Box(m.dst, image.Rectangle{Min: p, Max: p.Add(image.Pt(m.scale, m.scale))}, pixel.RGB888{R: r, G: g, B: b})
}

// Fill sets every cell.
func (m *Mirror) Fill(r, g, b uint8) {
	rect := image.Rectangle{Min: m.origin, Max: m.origin.Add(image.Pt(m.width*m.scale, m.height*m.scale))}
	draw.Draw(m.dst, rect, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xff}), image.Point{}, draw.Src)
}

// Clear sets every cell to black.
func (m *Mirror) Clear() {
	m.Fill(0, 0, 0)
}

// SetPWMBits is accepted for compatibility with LED panels; the framebuffer always shows full depth.
func (m *Mirror) SetPWMBits(bits uint8) error {
	if bits < 1 || bits > 11 {
		return fmt.Errorf("%w, got %d", ErrPWMBits, bits)
	}
	m.pwmBits = bits
	return nil
}

// PWMBits is the last accepted color depth.
func (m *Mirror) PWMBits() uint8 {
	return m.pwmBits
}

// Close unmaps the framebuffer.
func (m *Mirror) Close() error {
	if m.release == nil {
		return nil
	}
	err := m.release()
	m.release = nil
	return err
}
