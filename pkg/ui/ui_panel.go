// Package ui draws the optional overlay of the windowed host: a panel of
// live statistics with a few mouse controls.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	lineHeight  = 16.0
	titleHeight = 22.0
	padding     = 8.0
)

// Widget is a control hosted by a Panel. Update receives the cursor
// position and the left button state already read from ebiten.
type Widget interface {
	Update(mx, my int, pressed bool)
	Draw(screen *ebiten.Image)
	Height() float64
	place(x, y, width float64)
}

// Row is a label with a value refreshed on every Draw.
type Row struct {
	Label string
	Value func() string
}

// Panel is a fixed box of statistic rows followed by widgets.
type Panel struct {
	X, Y  float64
	Width float64
	Title string

	Rows    []Row
	Widgets []Widget

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel anchored at x, y.
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddRow appends a statistic line.
func (p *Panel) AddRow(label string, value func() string) {
	p.Rows = append(p.Rows, Row{Label: label, Value: value})
	p.layout()
}

// AddWidget appends a control below the rows.
func (p *Panel) AddWidget(w Widget) {
	p.Widgets = append(p.Widgets, w)
	p.layout()
}

func (p *Panel) layout() {
	y := p.Y + titleHeight + float64(len(p.Rows))*lineHeight + padding
	for _, w := range p.Widgets {
		w.place(p.X+padding, y, p.Width-2*padding)
		y += w.Height() + padding/2
	}
}

// Height is the height needed to show every row and widget.
func (p *Panel) Height() float64 {
	h := titleHeight + float64(len(p.Rows))*lineHeight + padding
	for _, w := range p.Widgets {
		h += w.Height() + padding/2
	}
	return h + padding/2
}

// Contains reports whether the point lies over the panel.
func (p *Panel) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height()
}

// Update forwards the mouse state to the widgets.
func (p *Panel) Update() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	for _, w := range p.Widgets {
		w.Update(mx, my, pressed)
	}
}

// Draw renders the panel box, its rows and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	h := p.Height()
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(h),
		1, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+padding), int(p.Y+4))
	y := p.Y + titleHeight
	for _, r := range p.Rows {
		ebitenutil.DebugPrintAt(screen, r.Label+": "+r.Value(), int(p.X+padding), int(y))
		y += lineHeight
	}
	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
