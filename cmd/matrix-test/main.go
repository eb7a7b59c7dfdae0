package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/BeatGlow/rgbmatrix"
	"github.com/BeatGlow/rgbmatrix/framebuffer"
	"github.com/BeatGlow/rgbmatrix/hat"
)

type CLI struct {
	Rows    int    `help:"Rows of a single panel" enum:"8,16,32,64" default:"32"`
	Chain   int    `help:"Number of daisy-chained panels" default:"1"`
	PWMBits uint8  `name:"pwm-bits" help:"Color depth per channel (1-11), 0 keeps the panel default" default:"0"`
	FB      string `name:"fb" help:"Mirror the matrix on this framebuffer device instead of the LED HAT" placeholder:"/dev/fb0"`
	Scale   int    `help:"Screen pixels per LED when using --fb, 0 picks the largest that fits" default:"0"`

	Fill    FillCmd    `cmd:"" help:"Flash the matrix red, green and blue"`
	Pattern PatternCmd `cmd:"" help:"Show the RGB test pattern"`
	Scroll  ScrollCmd  `cmd:"" help:"Scroll an image right to left across the matrix"`
	Text    TextCmd    `cmd:"" help:"Scroll a line of text across the matrix"`
	Buffer  BufferCmd  `cmd:"" help:"Show a raw RGB file of exactly width*height*3 bytes"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.Chain < 1 {
		return fmt.Errorf("invalid chain length: %d", c.Chain)
	}
	if c.Scale < 0 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}
	return nil
}

// open returns the matrix on the selected output.
func (c *CLI) open() (*rgbmatrix.Matrix, error) {
	if c.FB != "" {
		mirror, err := framebuffer.Open(c.FB, framebuffer.Config{
			Width:  c.Chain * 32,
			Height: c.Rows,
			Scale:  c.Scale,
		})
		if err != nil {
			return nil, fmt.Errorf("could not open framebuffer %q: %w", c.FB, err)
		}
		if c.PWMBits != 0 {
			if err = mirror.SetPWMBits(c.PWMBits); err != nil {
				_ = mirror.Close()
				return nil, err
			}
		}
		return rgbmatrix.New(mirror), nil
	}

	lines, err := hat.Open()
	if err != nil {
		return nil, fmt.Errorf("could not claim HAT lines: %w", err)
	}
	m, err := rgbmatrix.Open(lines, &rgbmatrix.Config{
		Rows:    c.Rows,
		Chain:   c.Chain,
		PWMBits: c.PWMBits,
	})
	if err != nil {
		_ = lines.Close()
		return nil, err
	}
	return m, nil
}

// session is what every subcommand runs against.
type session struct {
	ctx    context.Context
	matrix *rgbmatrix.Matrix
	logger *slog.Logger
}

// sleep waits for d, returning false when interrupted.
func (s *session) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// check logs rejected matrix calls.
func (s *session) check(op string, r rgbmatrix.Result) {
	if r.Diagnostic != rgbmatrix.OK {
		s.logger.Warn("matrix call not applied", "op", op, "diagnostic", r.Diagnostic, "reason", r.Reason)
	}
}

func parseColor(s string) (rgbmatrix.Packed, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x"), 16, 24)
	if err != nil {
		return 0, fmt.Errorf("could not read color %q: %w", s, err)
	}
	return rgbmatrix.Packed(v), nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("matrix-test"),
		kong.Description("Exercise an RGB LED matrix on the Adafruit HAT or a framebuffer mirror."),
		kong.UsageOnError(),
	)
	if err := run(kctx, &cli); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, cli *CLI) error {
	m, err := cli.open()
	if err != nil {
		return err
	}
	defer func() {
		m.Clear()
		if err := m.Close(); err != nil {
			slog.Error("could not close matrix", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default().With("matrix", m.String())
	logger.Info("running", "command", kctx.Command(), "bounds", m.Bounds())
	return kctx.Run(&session{ctx: ctx, matrix: m, logger: logger})
}
