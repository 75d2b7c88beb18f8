// Package termhost renders a background.Background in a terminal through
// tcell. Logical pixels map onto cells of CellWidth x CellHeight pixels:
// particles become dots and links are rasterized from cell to cell.
package termhost

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	dotRune  = '•'
	bigRune  = '●'
	linkRune = '·'
)

type request struct {
	id render.FrameID
	cb func()
}

// Host implements background.Host on a tcell screen. Frame callbacks and
// resize notifications run on the goroutine calling Run.
type Host struct {
	screen tcell.Screen
	logger golog.Logger

	CellWidth, CellHeight int
	Gain                  float64 // alpha multiplier, terminals have no sub-cell blending
	FPS                   int
	background            render.RGBA
	bgStyle               tcell.Style

	nextID  render.FrameID
	pending []request

	nextListener int
	listeners    map[int]func(width, height int)
}

type Option func(*Host)

func WithLogger(l golog.Logger) Option { return func(h *Host) { h.logger = l } }

// WithCellSize sets how many logical pixels one cell covers.
func WithCellSize(w, h int) Option {
	return func(host *Host) { host.CellWidth, host.CellHeight = max(w, 1), max(h, 1) }
}

func WithGain(g float64) Option { return func(h *Host) { h.Gain = g } }

func WithFPS(fps int) Option { return func(h *Host) { h.FPS = max(fps, 1) } }

// WithBackground sets the color cells are cleared to and blended against.
func WithBackground(c render.RGBA) Option { return func(h *Host) { h.background = c } }

// New wraps an initialized screen.
func New(screen tcell.Screen, opts ...Option) *Host {
	h := &Host{
		screen:     screen,
		logger:     golog.DiscardLogger,
		CellWidth:  8,
		CellHeight: 16,
		Gain:       3,
		FPS:        30,
		background: render.RGBA{A: 1},
		listeners:  make(map[int]func(width, height int)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.bgStyle = tcell.StyleDefault.Background(toColor(h.background))
	return h
}

func toColor(c render.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Context implements render.Canvas: the host is its own surface.
func (h *Host) Context() (render.Surface, bool) {
	w, ht := h.Size()
	if w <= 0 || ht <= 0 {
		return nil, false
	}
	return h, true
}

// Size is the screen size in logical pixels.
func (h *Host) Size() (int, int) {
	cols, rows := h.screen.Size()
	return cols * h.CellWidth, rows * h.CellHeight
}

func (h *Host) ViewportWidth() int {
	w, _ := h.Size()
	return w
}

func (h *Host) Clear() {
	h.screen.Fill(' ', h.bgStyle)
}

// blend mixes c over the background with the gained alpha.
func (h *Host) blend(c render.RGBA) tcell.Color {
	a := math.Min(1, math.Max(0, c.A*h.Gain))
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(bg) + (float64(fg)-float64(bg))*a))
	}
	return tcell.NewRGBColor(mix(c.R, h.background.R), mix(c.G, h.background.G), mix(c.B, h.background.B))
}

func (h *Host) cell(x, y float64) (int, int) {
	return int(math.Floor(x / float64(h.CellWidth))), int(math.Floor(y / float64(h.CellHeight)))
}

// BigDotRadius is the radius from which a particle is drawn with the large
// dot, in cell widths.
const BigDotRadius = 0.25

// FillCircle marks the cell holding the centre. Radii of BigDotRadius cell
// widths or more get the large dot; with 8px cells that is 2px.
func (h *Host) FillCircle(x, y, radius float64, c render.RGBA) {
	cx, cy := h.cell(x, y)
	r := dotRune
	if radius >= BigDotRadius*float64(h.CellWidth) {
		r = bigRune
	}
	h.screen.SetContent(cx, cy, r, nil, h.bgStyle.Foreground(h.blend(c)))
}

// StrokeLine rasterizes the segment in cell space. Cells holding a
// particle are left untouched.
func (h *Host) StrokeLine(x0, y0, x1, y1, _ float64, c render.RGBA) {
	style := h.bgStyle.Foreground(h.blend(c))
	ax, ay := h.cell(x0, y0)
	bx, by := h.cell(x1, y1)
	bresenham(ax, ay, bx, by, func(x, y int) {
		if r, _, _, _ := h.screen.GetContent(x, y); r == dotRune || r == bigRune {
			return
		}
		h.screen.SetContent(x, y, linkRune, nil, style)
	})
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RequestFrame implements render.Scheduler: cb runs on the next tick.
func (h *Host) RequestFrame(cb func()) render.FrameID {
	h.nextID++
	h.pending = append(h.pending, request{id: h.nextID, cb: cb})
	return h.nextID
}

func (h *Host) CancelFrame(id render.FrameID) {
	for i, r := range h.pending {
		if r.id == id {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

func (h *Host) OnResize(fn func(width, height int)) (cancel func()) {
	h.nextListener++
	key := h.nextListener
	h.listeners[key] = fn
	return func() { delete(h.listeners, key) }
}

// Tick runs the frame callbacks queued before it and shows the result.
func (h *Host) Tick() int {
	batch := h.pending
	h.pending = nil
	for _, r := range batch {
		r.cb()
	}
	if len(batch) > 0 {
		h.screen.Show()
	}
	return len(batch)
}

// HandleEvent processes one terminal event and reports whether to keep
// running.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		}
	case *tcell.EventResize:
		h.screen.Sync()
		w, ht := h.Size()
		h.logger.Debugf("termhost: resized to %dx%d px", w, ht)
		for _, fn := range h.listeners {
			fn(w, ht)
		}
	case nil:
		return false
	}
	return true
}

// Run drives the host until a quit key, ctx cancellation or the end of the
// event stream.
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(h.FPS))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev == nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			h.Tick()
		}
	}
}
