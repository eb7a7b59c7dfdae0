package blit

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when a flat buffer does not cover the surface exactly.
var ErrSizeMismatch = errors.New("blit: data buffer incorrect size")

// CopyBuffer overwrites every cell of dst from buf, which holds row-major R, G, B triples.
// Nothing is written unless len(buf) is exactly width*height*3.
func CopyBuffer(dst Surface, buf []byte) error {
	w, h := dst.Width(), dst.Height()
	if want := w * h * 3; len(buf) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrSizeMismatch, len(buf), want, w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 3
			dst.SetPixel(x, y, buf[o], buf[o+1], buf[o+2])
		}
	}
	return nil
}
