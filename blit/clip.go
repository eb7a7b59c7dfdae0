package blit

import "image"

// Clip is the visible part of a source placed on a surface.
type Clip struct {
	// Src is the first visible source pixel.
	Src image.Point

	// Dst is where Src lands on the surface.
	Dst image.Point

	// Size is the visible width and height, zero when nothing is visible.
	Size image.Point
}

// Empty reports whether nothing is visible.
func (c Clip) Empty() bool {
	return c.Size.X <= 0 || c.Size.Y <= 0
}

// Rect is the covered surface rectangle.
func (c Clip) Rect() image.Rectangle {
	if c.Empty() {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: c.Dst, Max: c.Dst.Add(c.Size)}
}

// ClipRect clips a source of size src placed at at against a surface of size dst. Offsets
// anywhere in the int range are accepted.
func ClipRect(src, dst, at image.Point) Clip {
	var (
		w, h   = src.X, src.Y
		dx, dy = at.X, at.Y
		sx, sy int
	)
	if w <= 0 || h <= 0 || dx >= dst.X || dy >= dst.Y || dx <= -w || dy <= -h {
		return Clip{}
	}

	// From here -w < dx < dst.X, so none of the differences below overflow.
	if dx < 0 { // left
		w += dx
		sx = -dx
		dx = 0
	}
	if dy < 0 { // top
		h += dy
		sy = -dy
		dy = 0
	}
	if w > dst.X-dx { // right
		w = dst.X - dx
	}
	if h > dst.Y-dy { // bottom
		h = dst.Y - dy
	}

	return Clip{
		Src:  image.Point{X: sx, Y: sy},
		Dst:  image.Point{X: dx, Y: dy},
		Size: image.Point{X: w, Y: h},
	}
}
