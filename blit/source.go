package blit

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/rgbmatrix/pixel"
)

// Format is the pixel encoding of a source image.
type Format uint8

// Supported formats.
const (
	Unsupported Format = iota
	TrueColor          // packed R, G, B with optional ignored alpha
	Bitmap1            // 1 bit per pixel, set is white
	Palette8           // 8 bit index into an RGB palette
)

func (f Format) String() string {
	switch f {
	case TrueColor:
		return "RGB"
	case Bitmap1:
		return "1"
	case Palette8:
		return "P"
	default:
		return "unsupported"
	}
}

// PaletteStride is the number of bytes per palette entry: R, G, B and one ignored byte.
const PaletteStride = 4

// Source is an image that can be blitted. Coordinates passed to the accessors are relative to
// the top-left corner of the source and always within Size.
type Source interface {
	// Format of the pixel data.
	Format() Format

	// Size of the image in pixels.
	Size() image.Point
}

// TrueColorSource is a [TrueColor] source.
type TrueColorSource interface {
	Source

	// PixelRGB returns the pixel with red in bits 0-7, green in 8-15 and blue in 16-23.
	// Bits 24-31 are ignored.
	PixelRGB(x, y int) uint32
}

// BitmapSource is a [Bitmap1] source.
type BitmapSource interface {
	Source

	// PixelBit reports whether the pixel is set.
	PixelBit(x, y int) bool
}

// PaletteSource is a [Palette8] source.
type PaletteSource interface {
	Source

	// PixelIndex returns the palette index of the pixel.
	PixelIndex(x, y int) uint8

	// Palette returns [PaletteStride] bytes per entry, enough for every index in the image.
	Palette() []byte
}

// FromImage wraps img as a [Source]. Images of a type without a decoder are returned with the
// [Unsupported] format, blitting them draws nothing.
func FromImage(img image.Image) Source {
	switch img := img.(type) {
	case Source:
		return img
	case *image.RGBA:
		return &rgbaSource{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	case *image.NRGBA:
		return &rgbaSource{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	case *pixel.RGBImage:
		return &rgbSource{img: img}
	case *pixel.MonoImage:
		return &monoSource{img: img}
	case *image.Paletted:
		return &palettedSource{img: img, pal: MakePalette(img.Palette)}
	default:
		return unsupported{img.Bounds().Size()}
	}
}

// MakePalette flattens p to [PaletteStride] bytes per entry, padded with black to 256 entries.
func MakePalette(p color.Palette) []byte {
	pal := make([]byte, 256*PaletteStride)
	for i, c := range p {
		if i == 256 {
			break
		}
		v := color.NRGBAModel.Convert(c).(color.NRGBA)
		copy(pal[i*PaletteStride:], []byte{v.R, v.G, v.B, v.A})
	}
	return pal
}

// rgbaSource reads 4 byte R, G, B, A pixels; alpha is not applied.
type rgbaSource struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (s *rgbaSource) Format() Format    { return TrueColor }
func (s *rgbaSource) Size() image.Point { return s.Rect.Size() }

func (s *rgbaSource) PixelRGB(x, y int) uint32 {
	i := y*s.Stride + x*4
	return binary.LittleEndian.Uint32(s.Pix[i : i+4 : i+4])
}

type rgbSource struct {
	img *pixel.RGBImage
}

func (s *rgbSource) Format() Format    { return TrueColor }
func (s *rgbSource) Size() image.Point { return s.img.Rect.Size() }

func (s *rgbSource) PixelRGB(x, y int) uint32 {
	i := y*s.img.Stride + x*3
	p := s.img.Pix[i : i+3 : i+3]
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
}

type monoSource struct {
	img *pixel.MonoImage
}

func (s *monoSource) Format() Format    { return Bitmap1 }
func (s *monoSource) Size() image.Point { return s.img.Rect.Size() }

func (s *monoSource) PixelBit(x, y int) bool {
	return s.img.Bit(s.img.Rect.Min.X+x, s.img.Rect.Min.Y+y)
}

type palettedSource struct {
	img *image.Paletted
	pal []byte
}

func (s *palettedSource) Format() Format    { return Palette8 }
func (s *palettedSource) Size() image.Point { return s.img.Rect.Size() }
func (s *palettedSource) Palette() []byte   { return s.pal }

func (s *palettedSource) PixelIndex(x, y int) uint8 {
	return s.img.Pix[y*s.img.Stride+x]
}

type unsupported struct {
	size image.Point
}

func (s unsupported) Format() Format    { return Unsupported }
func (s unsupported) Size() image.Point { return s.size }

// Interface checks.
var (
	_ TrueColorSource = (*rgbaSource)(nil)
	_ TrueColorSource = (*rgbSource)(nil)
	_ BitmapSource    = (*monoSource)(nil)
	_ PaletteSource   = (*palettedSource)(nil)
)
