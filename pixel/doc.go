// Package pixel implements the color codec and pixel stores used by RGB LED matrix surfaces.
//
// This module provides additional color models, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
