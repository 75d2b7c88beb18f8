// Package ggsurface implements render.Surface on an off-screen gg.Context,
// for rendering frames to PNG without a display.
package ggsurface

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
)

type Surface struct {
	dc         *gg.Context
	background render.RGBA
}

// New creates a width x height surface cleared to background.
func New(width, height int, background render.RGBA) *Surface {
	s := &Surface{background: background}
	s.Resize(width, height)
	return s
}

func (s *Surface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Clear paints the whole surface with the background color.
func (s *Surface) Clear() {
	s.dc.SetColor(s.background.NRGBA())
	s.dc.Clear()
}

func (s *Surface) FillCircle(x, y, radius float64, c render.RGBA) {
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawCircle(x, y, radius)
	s.dc.Fill()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c render.RGBA) {
	s.dc.SetColor(c.NRGBA())
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.dc.Stroke()
}

// Resize replaces the backing image; the previous content is lost.
// Dimensions below 1 are raised to 1.
func (s *Surface) Resize(width, height int) {
	s.dc = gg.NewContext(max(width, 1), max(height, 1))
	s.Clear()
}

// Image returns the backing image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the current content to path.
func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}
