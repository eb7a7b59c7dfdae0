// Package panel holds the frame of one or more chained HUB75 RGB LED panels.
//
// A [Panel] is a plain cell store: refresh timing and the row-scan protocol belong to whatever
// drives the claimed [hat.IO] lines.
package panel

import (
	"errors"
	"fmt"
	"image"

	"github.com/BeatGlow/rgbmatrix/hat"
	"github.com/BeatGlow/rgbmatrix/pixel"
)

// Geometry and color depth limits.
const (
	Columns        = 32 // columns per panel
	MaxPWMBits     = 11
	DefaultPWMBits = MaxPWMBits
)

// Errors
var (
	ErrIO      = errors.New("panel: no GPIO lines")
	ErrRows    = errors.New("panel: rows must be 8, 16, 32 or 64")
	ErrChain   = errors.New("panel: chain length must be at least 1")
	ErrPWMBits = errors.New("panel: PWM bits must be between 1 and 11")
)

// Panel is a chain of panels addressed as one surface, Columns*chain cells wide and rows high.
type Panel struct {
	io      *hat.IO
	img     *pixel.RGBImage
	rows    int
	chain   int
	pwmBits uint8
}

// New allocates the frame for chain panels of the given number of rows, driven through io.
// The panel takes ownership of io and releases it on Close.
func New(io *hat.IO, rows, chain int) (*Panel, error) {
	if io == nil {
		return nil, ErrIO
	}
	switch rows {
	case 8, 16, 32:
	case 64:
		if !io.HasE() {
			return nil, fmt.Errorf("%w: 64 rows need address line E", ErrRows)
		}
	default:
		return nil, fmt.Errorf("%w, got %d", ErrRows, rows)
	}
	if chain < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrChain, chain)
	}

	return &Panel{
		io:      io,
		img:     pixel.NewRGBImage(Columns*chain, rows),
		rows:    rows,
		chain:   chain,
		pwmBits: DefaultPWMBits,
	}, nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("HUB75 %dx%d (%d panel chain, %d PWM bits)", p.Width(), p.Height(), p.chain, p.pwmBits)
}

// Width in cells.
func (p *Panel) Width() int {
	return p.img.Rect.Dx()
}

// Height in cells.
func (p *Panel) Height() int {
	return p.img.Rect.Dy()
}

// Bounds of the frame.
func (p *Panel) Bounds() image.Rectangle {
	return p.img.Rect
}

// SetPixel sets one cell. Writes outside the panel are ignored.
func (p *Panel) SetPixel(x, y int, r, g, b uint8) {
	p.img.SetRGB(x, y, r, g, b)
}

// RGBAt returns the cell at (x, y).
func (p *Panel) RGBAt(x, y int) (r, g, b uint8) {
	return p.img.RGBAt(x, y)
}

// Fill sets every cell.
func (p *Panel) Fill(r, g, b uint8) {
	p.img.FillRGB(r, g, b)
}

// Clear sets every cell to black.
func (p *Panel) Clear() {
	p.img.Clear()
}

// PWMBits is the configured color depth per channel.
func (p *Panel) PWMBits() uint8 {
	return p.pwmBits
}

// SetPWMBits configures the color depth per channel.
func (p *Panel) SetPWMBits(bits uint8) error {
	if bits < 1 || bits > MaxPWMBits {
		return fmt.Errorf("%w, got %d", ErrPWMBits, bits)
	}
	p.pwmBits = bits
	return nil
}

// Frame is the backing store, row-major R, G, B.
func (p *Panel) Frame() *pixel.RGBImage {
	return p.img
}

// Close releases the GPIO lines.
func (p *Panel) Close() error {
	return p.io.Close()
}
