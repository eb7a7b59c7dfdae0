package pixel

import "image/color"

// Models for the standard color types.
var (
	MonoModel   color.Model = color.ModelFunc(monoModel)
	RGB888Model color.Model = color.ModelFunc(rgb888Model)
	CRGB16Model color.Model = color.ModelFunc(crgb16Model)
	XRGB32Model color.Model = color.ModelFunc(xrgb32Model)
)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Pack24 packs three 8-bit channels into a 0xRRGGBB value.
func Pack24(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack24 splits a 0xRRGGBB value into its channels. Bits above the low 24 are ignored.
func Unpack24(c uint32) (r, g, b uint8) {
	return uint8(c >> 16 & 0xff), uint8(c >> 8 & 0xff), uint8(c & 0xff)
}

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// JFIF luma coefficients, 19595 + 38470 + 7471 == 65536. The shift by 31 leaves a single bit.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}

// RGB888 is a fully opaque color with 8 bits per channel, the native cell format of an LED matrix.
type RGB888 struct {
	R, G, B uint8
}

func (c RGB888) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Packed returns the color as 0xRRGGBB.
func (c RGB888) Packed() uint32 {
	return Pack24(c.R, c.G, c.B)
}

func rgb888Model(c color.Color) color.Color {
	switch c := c.(type) {
	case RGB888:
		return c
	case color.RGBA:
		return RGB888{c.R, c.G, c.B}
	default:
		r, g, b, _ := c.RGBA()
		return RGB888{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}

// xrgb32Model stores 8 bits per channel like RGB888; only the memory layout differs.
func xrgb32Model(c color.Color) color.Color {
	return rgb888Model(c)
}

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case Mono:
		if c.On {
			return CRGB16{0xffff}
		}
		return CRGB16{}
	case CRGB16:
		return c
	default:
		r, g, b, _ := c.RGBA()
		r = (r & 0xF800)
		g = (g & 0xFC00) >> 5
		b = (b & 0xF800) >> 11
		return CRGB16{uint16(r | g | b)}
	}
}
