// Package rgbmatrix drives RGB LED matrices built from chained HUB75 panels.
//
// A [Matrix] accepts colors, flat RGB buffers and images and writes them to a [Surface]. Images
// are clipped to the surface, so they can be placed partly or fully outside it, which makes
// scrolling a matter of moving the destination offset.
package rgbmatrix

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/BeatGlow/rgbmatrix/blit"
	"github.com/BeatGlow/rgbmatrix/hat"
	"github.com/BeatGlow/rgbmatrix/panel"
)

var debug bool

func init() {
	debug = os.Getenv("RGBMATRIX_DEBUG") != ""
}

// Errors
var (
	ErrInvalidArguments = errors.New("rgbmatrix: invalid arguments")
	ErrSizeMismatch     = blit.ErrSizeMismatch
)

// Surface is a fixed-size grid of RGB cells.
type Surface interface {
	blit.Surface

	// Fill sets every cell to one color.
	Fill(r, g, b uint8)

	// Clear sets every cell to black.
	Clear()

	// SetPWMBits configures the color depth per channel.
	SetPWMBits(bits uint8) error
}

// Config is the matrix configuration.
type Config struct {
	// Rows of a single panel: 8, 16, 32 or 64. 0 uses [DefaultConfig].
	Rows int

	// Chain is the number of daisy-chained panels. 0 uses [DefaultConfig].
	Chain int

	// PWMBits is the color depth per channel, 0 keeps the panel default.
	PWMBits uint8
}

// DefaultConfig is a single 32x32 panel.
var DefaultConfig = Config{
	Rows:  32,
	Chain: 1,
}

// Matrix is the drawing front end of a [Surface].
//
// A Matrix is not safe for concurrent use; callers sharing one must serialize access.
type Matrix struct {
	s Surface
}

// Open allocates a HUB75 panel chain on the claimed HAT lines and returns a cleared matrix.
// A nil config, or its zero fields, use [DefaultConfig]. On error the lines are left claimed.
func Open(lines *hat.IO, config *Config) (*Matrix, error) {
	c := DefaultConfig
	if config != nil {
		if config.Rows != 0 {
			c.Rows = config.Rows
		}
		if config.Chain != 0 {
			c.Chain = config.Chain
		}
		c.PWMBits = config.PWMBits
	}

	p, err := panel.New(lines, c.Rows, c.Chain)
	if err != nil {
		return nil, err
	}
	if c.PWMBits != 0 {
		if err = p.SetPWMBits(c.PWMBits); err != nil {
			return nil, err
		}
	}

	return New(p), nil
}

// New returns a matrix drawing onto s and clears it.
func New(s Surface) *Matrix {
	s.Clear()
	return &Matrix{s: s}
}

func (m *Matrix) String() string {
	if s, ok := m.s.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("matrix %dx%d", m.s.Width(), m.s.Height())
}

// Surface is the surface drawn on.
func (m *Matrix) Surface() Surface {
	return m.s
}

// Bounds is the matrix bounding box.
func (m *Matrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.s.Width(), m.s.Height())
}

// Close releases the surface, if it holds any resources.
func (m *Matrix) Close() error {
	if c, ok := m.s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Clear turns every cell off.
func (m *Matrix) Clear() Result {
	m.s.Clear()
	return Result{Rect: m.Bounds()}
}

// Fill sets every cell to c.
func (m *Matrix) Fill(c Color) Result {
	if c == nil {
		return m.invalid("Fill", "nil color")
	}
	r, g, b := c.channels()
	m.s.Fill(r, g, b)
	return Result{Rect: m.Bounds()}
}

// SetPixel sets the cell at (x, y) to c.
func (m *Matrix) SetPixel(x, y int, c Color) Result {
	if c == nil {
		return m.invalid("SetPixel", "nil color")
	}
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return m.invalid("SetPixel", fmt.Sprintf("(%d,%d) outside %s", x, y, m.Bounds()))
	}
	r, g, b := c.channels()
	m.s.SetPixel(x, y, r, g, b)
	return Result{Rect: image.Rect(x, y, x+1, y+1)}
}

// SetBuffer overwrites the whole matrix from row-major R, G, B triples. The buffer must hold
// exactly width*height*3 bytes; otherwise nothing is written and [ErrSizeMismatch] is returned.
func (m *Matrix) SetBuffer(buf []byte) error {
	return blit.CopyBuffer(m.s, buf)
}

// SetImage draws src with its top-left corner at at. Parts outside the matrix are clipped.
// Sources in a format that can not be decoded leave the matrix untouched and still succeed.
func (m *Matrix) SetImage(src blit.Source, at image.Point) Result {
	if src == nil {
		return m.invalid("SetImage", "nil image")
	}

	if rect := blit.Blit(m.s, src, at); !rect.Empty() {
		return Result{Rect: rect}
	}
	if blit.ClipRect(src.Size(), m.Bounds().Size(), at).Empty() {
		return Result{Diagnostic: NothingVisible}
	}
	if debug {
		log.Printf("rgbmatrix: SetImage: unsupported image format %s", src.Format())
	}
	return Result{Diagnostic: UnsupportedFormat}
}

// SetPWMBits configures the color depth per channel.
func (m *Matrix) SetPWMBits(bits uint8) Result {
	if err := m.s.SetPWMBits(bits); err != nil {
		return m.invalid("SetPWMBits", err.Error())
	}
	return Result{}
}

func (m *Matrix) invalid(op, reason string) Result {
	if debug {
		log.Printf("rgbmatrix: %s: %s", op, reason)
	}
	return Result{Diagnostic: InvalidArguments, Reason: op + ": " + reason}
}
