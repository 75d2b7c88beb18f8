package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a boolean and reports every change through OnChange.
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	OnChange func(bool)

	held bool // button still down since the last toggle
}

func NewCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	return &Checkbox{Label: label, Value: value, Size: 14, OnChange: onChange}
}

func (c *Checkbox) place(x, y, _ float64) { c.X, c.Y = x, y }

func (c *Checkbox) Height() float64 { return c.Size }

func (c *Checkbox) over(mx, my int) bool {
	return float64(mx) >= c.X && float64(mx) <= c.X+c.Size &&
		float64(my) >= c.Y && float64(my) <= c.Y+c.Size
}

// Update toggles once per press over the box.
func (c *Checkbox) Update(mx, my int, pressed bool) {
	if !pressed {
		c.held = false
		return
	}
	if c.held || !c.over(mx, my) {
		return
	}
	c.held = true
	c.Value = !c.Value
	if c.OnChange != nil {
		c.OnChange(c.Value)
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		1.5, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	if c.Value {
		vector.FillRect(screen,
			float32(c.X+3), float32(c.Y+3),
			float32(c.Size-6), float32(c.Size-6),
			color.RGBA{R: 100, G: 200, B: 100, A: 255}, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y-1))
}
