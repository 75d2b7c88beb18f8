package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button calls OnClick when pressed over it.
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	H       float64
	OnClick func()

	hover bool
	held  bool

	BGColor    color.RGBA
	HoverColor color.RGBA
}

func NewButton(label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		H:          20,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) place(x, y, width float64) { b.X, b.Y, b.Width = x, y, width }

func (b *Button) Height() float64 { return b.H }

// Update fires OnClick once per press; holding the button does not repeat.
func (b *Button) Update(mx, my int, pressed bool) {
	b.hover = float64(mx) >= b.X && float64(mx) <= b.X+b.Width &&
		float64(my) >= b.Y && float64(my) <= b.Y+b.H
	if !pressed {
		b.held = false
		return
	}
	if b.held || !b.hover {
		return
	}
	b.held = true
	if b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.H),
		bg, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.H),
		1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+6), int(b.Y+3))
}
