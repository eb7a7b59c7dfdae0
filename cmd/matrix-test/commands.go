package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/BeatGlow/rgbmatrix"
	"github.com/BeatGlow/rgbmatrix/blit"
	"github.com/BeatGlow/rgbmatrix/draw"
)

type FillCmd struct {
	Colors []string      `arg:"" optional:"" help:"Packed 0xRRGGBB colors to cycle through" default:"FF0000,00FF00,0000FF"`
	Delay  time.Duration `help:"Time each color is shown" default:"1s"`
}

func (c *FillCmd) Run(s *session) error {
	for _, arg := range c.Colors {
		v, err := parseColor(arg)
		if err != nil {
			return err
		}
		s.logger.Info("fill", "color", fmt.Sprintf("%06X", uint32(v)))
		s.check("fill", s.matrix.Fill(v))
		if !s.sleep(c.Delay) {
			break
		}
	}
	return nil
}

type PatternCmd struct {
	Hold time.Duration `help:"Time the pattern is shown" default:"10s"`
}

// Run draws 16 blue levels, each an 8x8 swatch of red by green levels.
func (c *PatternCmd) Run(s *session) error {
	for b := 0; b < 16; b++ {
		for g := 0; g < 8; g++ {
			for r := 0; r < 8; r++ {
				x, y := (b/4)*8+g, (b&3)*8+r
				// Cells beyond a short or narrow matrix are rejected and skipped.
				s.matrix.SetPixel(x, y, rgbmatrix.RGB{
					R: uint8(r * 0b001001001 / 2),
					G: uint8(g * 0b001001001 / 2),
					B: uint8(b * 0b00010001),
				})
			}
		}
	}
	s.sleep(c.Hold)
	return nil
}

type ScrollCmd struct {
	Image string        `arg:"" type:"existingfile" help:"Image to scroll (GIF, PNG, JPEG, BMP, TIFF or WebP)"`
	Sky   string        `help:"Background fill color" default:"6F85FF"`
	Step  time.Duration `help:"Delay between steps" default:"25ms"`
	Loop  bool          `help:"Keep scrolling until interrupted"`
}

func (c *ScrollCmd) Run(s *session) error {
	f, err := os.Open(c.Image)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", c.Image, err)
	}
	img, kind, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("could not decode image %q: %w", c.Image, err)
	}

	bounds := s.matrix.Bounds()
	if img.Bounds().Dy() > bounds.Dy() {
		// Keep the width free so wide banners still scroll.
		img = draw.Fit(img, image.Pt(img.Bounds().Dx(), bounds.Dy()))
	}
	src := blit.FromImage(img)
	if !blit.Supported(src) {
		// Formats like YCbCr from JPEG are converted once up front.
		src = blit.FromImage(draw.ToRGBA(img))
	}
	s.logger.Info("scrolling", "file", c.Image, "type", kind, "size", src.Size(), "format", src.Format())

	sky, err := parseColor(c.Sky)
	if err != nil {
		return err
	}
	return scroll(s, src, sky, c.Step, c.Loop)
}

type TextCmd struct {
	Message    string        `arg:"" help:"Text to scroll"`
	Size       float64       `help:"Font size in points, one point per LED" default:"0"`
	Color      string        `help:"Text color" default:"FFFFFF"`
	Background string        `help:"Background color" default:"000000"`
	Step       time.Duration `help:"Delay between steps" default:"40ms"`
	Loop       bool          `help:"Keep scrolling until interrupted"`
}

func (c *TextCmd) Run(s *session) error {
	fg, err := parseColor(c.Color)
	if err != nil {
		return err
	}
	bg, err := parseColor(c.Background)
	if err != nil {
		return err
	}

	face, err := draw.NewFace(c.Size)
	if err != nil {
		return fmt.Errorf("could not load font: %w", err)
	}
	defer face.Close()

	size := draw.MeasureText(face, c.Message)
	size.Y = max(size.Y, s.matrix.Bounds().Dy())
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(toRGBA(bg)), image.Point{}, draw.Src)
	draw.Text(canvas, image.Point{}, face, toRGBA(fg), c.Message)

	s.logger.Info("scrolling text", "message", c.Message, "size", size)
	return scroll(s, blit.FromImage(canvas), bg, c.Step, c.Loop)
}

type BufferCmd struct {
	File string        `arg:"" type:"existingfile" help:"Raw row-major R, G, B bytes"`
	Hold time.Duration `help:"Time the buffer is shown" default:"10s"`
}

func (c *BufferCmd) Run(s *session) error {
	buf, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("could not read buffer %q: %w", c.File, err)
	}
	if err = s.matrix.SetBuffer(buf); err != nil {
		return err
	}
	s.sleep(c.Hold)
	return nil
}

// scroll moves src from just beyond the right edge until it has left on the left.
func scroll(s *session, src blit.Source, background rgbmatrix.Packed, step time.Duration, loop bool) error {
	var (
		width = s.matrix.Bounds().Dx()
		w     = src.Size().X
	)
	for {
		s.matrix.Fill(background)
		for n := width; n > -w; n-- {
			s.check("scroll", s.matrix.SetImage(src, image.Pt(n, 0)))
			if !s.sleep(step) {
				return nil
			}
		}
		if !loop {
			return nil
		}
	}
}

func toRGBA(c rgbmatrix.Packed) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
