// Package hat acquires the GPIO lines that drive chained HUB75 panels through an
// Adafruit RGB Matrix HAT or Bonnet.
//
// The lines are claimed once with [Open] (or [New] for pins resolved elsewhere) and handed to
// the panel that uses them. Closing the [IO] blanks the panels and drives every line low.
package hat

import (
	"errors"
	"fmt"
	"log"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var debug = os.Getenv("RGBMATRIX_DEBUG") != ""

// Errors
var (
	ErrPin    = errors.New("hat: GPIO pin is invalid")
	ErrClosed = errors.New("hat: GPIO lines are released")
)

// Pins are the HUB75 lines. E is only wired on panels with 64 rows and may be nil.
type Pins struct {
	// Color data for the upper (1) and lower (2) half of the panel.
	R1, G1, B1 gpio.PinOut
	R2, G2, B2 gpio.PinOut

	// Row address lines.
	A, B, C, D, E gpio.PinOut

	// Clock shifts color data, Latch strobes it into the output registers.
	Clock, Latch gpio.PinOut

	// OE is the active low output enable.
	OE gpio.PinOut
}

// DefaultPinNames maps the Adafruit HAT wiring to host GPIO names.
var DefaultPinNames = map[string]string{
	"R1":    "GPIO5",
	"G1":    "GPIO13",
	"B1":    "GPIO6",
	"R2":    "GPIO12",
	"G2":    "GPIO16",
	"B2":    "GPIO23",
	"A":     "GPIO22",
	"B":     "GPIO26",
	"C":     "GPIO27",
	"D":     "GPIO20",
	"E":     "GPIO24",
	"Clock": "GPIO17",
	"Latch": "GPIO21",
	"OE":    "GPIO4",
}

// DefaultPins looks up [DefaultPinNames] in the GPIO registry. The host drivers must have been
// loaded; missing pins are left nil.
func DefaultPins() Pins {
	var p Pins
	for _, line := range p.lines() {
		if pin := gpioreg.ByName(DefaultPinNames[line.name]); pin != nil {
			*line.pin = pin
		}
	}
	return p
}

type namedPin struct {
	name string
	pin  *gpio.PinOut
}

func (p *Pins) lines() []namedPin {
	return []namedPin{
		{"R1", &p.R1}, {"G1", &p.G1}, {"B1", &p.B1},
		{"R2", &p.R2}, {"G2", &p.G2}, {"B2", &p.B2},
		{"A", &p.A}, {"B", &p.B}, {"C", &p.C}, {"D", &p.D}, {"E", &p.E},
		{"Clock", &p.Clock}, {"Latch", &p.Latch}, {"OE", &p.OE},
	}
}

func valid(pin gpio.PinOut) bool {
	return pin != nil && pin != gpio.INVALID
}

// IO is the claimed set of HAT lines.
type IO struct {
	pins   Pins
	closed bool
}

// Open loads the host drivers and claims the default HAT pins.
func Open() (*IO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hat: host init: %w", err)
	}
	return New(DefaultPins())
}

// New claims pins. Every line except E is required; a nil or invalid E means it is not wired.
// All data, address and control lines are driven low and the output is blanked.
func New(pins Pins) (*IO, error) {
	if pins.E == gpio.INVALID {
		pins.E = nil
	}
	for _, line := range pins.lines() {
		if line.name == "E" && *line.pin == nil {
			continue
		}
		if !valid(*line.pin) {
			return nil, fmt.Errorf("%w: %s", ErrPin, line.name)
		}
	}

	io := &IO{pins: pins}
	if err := io.reset(); err != nil {
		return nil, err
	}
	if debug {
		log.Printf("hat: claimed %s", io)
	}
	return io, nil
}

func (io *IO) reset() error {
	if err := io.pins.OE.Out(gpio.High); err != nil {
		return fmt.Errorf("hat: OE: %w", err)
	}
	for _, line := range io.pins.lines() {
		if line.name == "OE" || *line.pin == nil {
			continue
		}
		if err := (*line.pin).Out(gpio.Low); err != nil {
			return fmt.Errorf("hat: %s: %w", line.name, err)
		}
	}
	return nil
}

// Pins returns the claimed lines.
func (io *IO) Pins() Pins {
	return io.pins
}

// HasE reports whether the fifth address line is wired.
func (io *IO) HasE() bool {
	return io.pins.E != nil
}

// Blank turns the panel outputs off (true) or on (false).
func (io *IO) Blank(blank bool) error {
	if io.closed {
		return ErrClosed
	}
	return io.pins.OE.Out(gpio.Level(blank))
}

// Close blanks the panels and drives every line low. Closing twice is a no-op.
func (io *IO) Close() error {
	if io.closed {
		return nil
	}
	io.closed = true
	if debug {
		log.Printf("hat: releasing %s", io)
	}
	return io.reset()
}

func (io *IO) String() string {
	return fmt.Sprintf("HUB75 OE=%s CLK=%s LAT=%s", io.pins.OE, io.pins.Clock, io.pins.Latch)
}
