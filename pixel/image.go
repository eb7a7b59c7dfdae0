package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/rgbmatrix/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel monochrome image, least significant bit leftmost.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	stride := (w + 7) / 8 // round up to whole bytes
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

// Bit reports whether the pixel at (x, y) is lit. It does not check bounds.
func (p *MonoImage) Bit(x, y int) bool {
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	return p.Pix[y*p.Stride+x/8]&(1<<uint(x%8)) != 0
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Bit(x, y)}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	index := y*p.Stride + x/8
	if monoModel(c).(Mono).On {
		p.Pix[index] |= 1 << uint(x%8)
	} else {
		p.Pix[index] &^= 1 << uint(x%8)
	}
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// RGBImage is a 24-bits per pixel image, stored as R, G, B byte triples.
type RGBImage struct {
	Buffer
}

func NewRGBImage(w, h int) *RGBImage {
	return &RGBImage{
		Buffer: makeBuffer(w, h, w*3, w*3*h),
	}
}

func (p *RGBImage) ColorModel() color.Model {
	return RGB888Model
}

// PixOffset is the index of the first byte of the pixel at (x, y).
func (p *RGBImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// RGBAt returns the channels at (x, y), or black when out of bounds.
func (p *RGBImage) RGBAt(x, y int) (r, g, b uint8) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return s[0], s[1], s[2]
}

// SetRGB sets the channels at (x, y); out of bounds writes are ignored.
func (p *RGBImage) SetRGB(x, y int, r, g, b uint8) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = r, g, b
}

func (p *RGBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	r, g, b := p.RGBAt(x, y)
	return RGB888{r, g, b}
}

func (p *RGBImage) Set(x, y int, c color.Color) {
	v := rgb888Model(c).(RGB888)
	p.SetRGB(x, y, v.R, v.G, v.B)
}

func (p *RGBImage) Fill(c color.Color) {
	v := rgb888Model(c).(RGB888)
	p.FillRGB(v.R, v.G, v.B)
}

// FillRGB sets every pixel to the same channels.
func (p *RGBImage) FillRGB(r, g, b uint8) {
	for i, l := 0, len(p.Pix)-2; i < l; i += 3 {
		p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
	}
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[(x-p.Rect.Min.X)*2+(y-p.Rect.Min.Y)*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[(x-p.Rect.Min.X)*2+(y-p.Rect.Min.Y)*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	value := crgb16Model(c).(CRGB16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// XRGB32Image is a 32-bits per pixel image stored as B, G, R, X bytes, the little-endian
// layout of a 0xXXRRGGBB word. The X byte is written as 0xff and ignored on read.
type XRGB32Image struct {
	Buffer
}

func NewXRGB32Image(w, h int) *XRGB32Image {
	return &XRGB32Image{
		Buffer: makeBuffer(w, h, w*4, w*4*h),
	}
}

func (p *XRGB32Image) ColorModel() color.Model {
	return XRGB32Model
}

func (p *XRGB32Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *XRGB32Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	i := p.PixOffset(x, y)
	return RGB888{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i]}
}

func (p *XRGB32Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	v := rgb888Model(c).(RGB888)
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = v.B, v.G, v.R, 0xff
}

func (p *XRGB32Image) Fill(c color.Color) {
	v := rgb888Model(c).(RGB888)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for i, l := p.PixOffset(p.Rect.Min.X, y), p.PixOffset(p.Rect.Max.X, y); i < l; i += 4 {
			p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = v.B, v.G, v.R, 0xff
		}
	}
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*RGBImage)(nil)
	_ Image = (*CRGB16Image)(nil)
	_ Image = (*XRGB32Image)(nil)
)
