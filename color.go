package rgbmatrix

import "github.com/BeatGlow/rgbmatrix/pixel"

// Color is a color argument, either [Packed] or [RGB].
type Color interface {
	channels() (r, g, b uint8)
}

// Packed is a 0xRRGGBB color. Bits above 24 are ignored.
type Packed uint32

func (c Packed) channels() (r, g, b uint8) {
	return pixel.Unpack24(uint32(c))
}

// RGB is a color given as separate channels.
type RGB struct {
	R, G, B uint8
}

func (c RGB) channels() (r, g, b uint8) {
	return c.R, c.G, c.B
}
