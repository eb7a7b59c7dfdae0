package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"syscall"
	"unsafe"

	"github.com/BeatGlow/rgbmatrix/draw"
	"github.com/BeatGlow/rgbmatrix/pixel"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// Open maps a Linux framebuffer device (fbdev) by name, typically /dev/fb[0..x], and mirrors a
// matrix of the configured geometry onto it.
func Open(name string, config Config) (*Mirror, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		fd         = f.Fd()
		info       linuxFixScreenInfo
		screenInfo linuxVarScreenInfo
	)
	if err = linuxIoctl(fd, fbioGetFScreenInfo, unsafe.Pointer(&info)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = linuxIoctl(fd, fbioGetVScreenInfo, unsafe.Pointer(&screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}
	model, err := linuxParseColorModel(&screenInfo)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	pix, err := syscall.Mmap(int(fd), 0, int(info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	release := func() error {
		if err := syscall.Munmap(pix); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	dst, err := linuxImage(model, pixel.Buffer{
		Rect:   image.Rect(0, 0, int(screenInfo.Xres), int(screenInfo.Yres)),
		Pix:    pix,
		Stride: int(info.LineLength),
	})
	if err != nil {
		_ = release()
		return nil, err
	}

	m, err := newMirror(dst, config, release)
	if err != nil {
		_ = release()
		return nil, err
	}
	return m, nil
}

func linuxImage(model color.Model, buf pixel.Buffer) (draw.Image, error) {
	if need := (buf.Rect.Dy()-1)*buf.Stride + buf.Rect.Dx()*linuxBytesPerPixel(model); buf.Rect.Empty() || len(buf.Pix) < need {
		return nil, fmt.Errorf("framebuffer: %d bytes mapped, screen %s needs %d", len(buf.Pix), buf.Rect.Size(), need)
	}
	switch model {
	case pixel.CRGB16Model:
		return &pixel.CRGB16Image{Buffer: buf, Order: binary.LittleEndian}, nil
	case color.RGBAModel:
		return &image.RGBA{Pix: buf.Pix, Stride: buf.Stride, Rect: buf.Rect}, nil
	case pixel.XRGB32Model:
		return &pixel.XRGB32Image{Buffer: buf}, nil
	default:
		return nil, errors.New("framebuffer: unsupported color model")
	}
}

func linuxBytesPerPixel(model color.Model) int {
	if model == pixel.CRGB16Model {
		return 2
	}
	return 4
}

func linuxIoctl(fd, cmd uintptr, arg unsafe.Pointer) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, cmd, uintptr(arg)); errno != 0 {
		return &os.SyscallError{
			Syscall: "SYS_IOCTL",
			Err:     errno,
		}
	}
	return nil
}

type linuxFixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo is struct fb_var_screeninfo.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

func linuxParseColorModel(info *linuxVarScreenInfo) (color.Model, error) {
	if info == nil {
		return nil, errors.New("framebuffer: invalid VarScreenInfo")
	}

	switch {
	case info.BitsPerPixel == 16 &&
		info.Red.Offset == 11 && info.Red.Length == 5 &&
		info.Green.Offset == 5 && info.Green.Length == 6 &&
		info.Blue.Offset == 0 && info.Blue.Length == 5:
		return pixel.CRGB16Model, nil

	case info.BitsPerPixel == 32 &&
		info.Red.Offset == 0 && info.Red.Length == 8 &&
		info.Green.Offset == 8 && info.Green.Length == 8 &&
		info.Blue.Offset == 16 && info.Blue.Length == 8:
		return color.RGBAModel, nil

	case info.BitsPerPixel == 32 &&
		info.Red.Offset == 16 && info.Red.Length == 8 &&
		info.Green.Offset == 8 && info.Green.Length == 8 &&
		info.Blue.Offset == 0 && info.Blue.Length == 8:
		return pixel.XRGB32Model, nil
	}

	return nil, fmt.Errorf("framebuffer: unsupported %d bpp color layout", info.BitsPerPixel)
}
