// Package render draws a field.Field onto a 2D surface once per display
// refresh and keeps doing so until it is stopped.
//
// The package only depends on three small contracts that hosts implement:
// Surface (the drawing operations), Canvas (access to the surface, which may
// not be ready) and Scheduler (request and cancel the next frame).
package render

import (
	"fmt"
	"image/color"
	"math"
)

// Surface is a 2D drawing surface measured in logical pixels.
type Surface interface {
	// Size reports the current pixel dimensions.
	Size() (width, height int)
	// Clear wipes the whole surface.
	Clear()
	// FillCircle draws a filled disc centred on (x, y).
	FillCircle(x, y, radius float64, c RGBA)
	// StrokeLine draws a straight segment with the given stroke width.
	StrokeLine(x0, y0, x1, y1, width float64, c RGBA)
}

// Canvas gives access to the drawing surface. ok is false while the
// surface is not attached, or once it has been lost.
type Canvas interface {
	Context() (s Surface, ok bool)
}

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler runs a callback once before the next visual refresh.
// CancelFrame revokes a pending request; cancelling an unknown or already
// fired request is a no-op.
type Scheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

// RGBA is a color with a straight (non premultiplied) alpha in [0, 1].
// Alpha stays a float so that faint line opacities are not quantized
// before they reach the backend.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// White is opaque white.
var White = RGBA{R: 255, G: 255, B: 255, A: 1}

// WithAlpha returns the same color with another alpha.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// NRGBA converts to an 8-bit color.NRGBA, clamping alpha to [0, 1].
func (c RGBA) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// String renders the color the CSS way, e.g. rgba(255, 255, 255, 0.2).
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}
