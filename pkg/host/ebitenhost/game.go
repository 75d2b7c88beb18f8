// Package ebitenhost runs a background.Background in an ebiten window.
//
// Frame callbacks requested by the render loop run inside Draw, bound to the
// screen image; resize notifications are dispatched from Draw too, before
// those callbacks, so the loop always sees a field matching the screen.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/background"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/ui"
	golog "github.com/tochemey/goakt/v3/log"
)

// screenSurface draws on the screen image of the current Draw. Between
// draws img is nil and drawing calls are dropped.
type screenSurface struct {
	img        *ebiten.Image
	w, h       int
	background color.NRGBA
}

func (s *screenSurface) Size() (int, int) { return s.w, s.h }

func (s *screenSurface) Clear() {
	if s.img != nil {
		s.img.Fill(s.background)
	}
}

func (s *screenSurface) FillCircle(x, y, radius float64, c render.RGBA) {
	if s.img != nil {
		vector.FillCircle(s.img, float32(x), float32(y), float32(radius), c.NRGBA(), true)
	}
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1, width float64, c render.RGBA) {
	if s.img != nil {
		vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
	}
}

type request struct {
	id render.FrameID
	cb func()
}

// Game implements ebiten.Game and background.Host.
type Game struct {
	bg     *background.Background
	logger golog.Logger
	surf   *screenSurface

	// size last dispatched to resize listeners
	notifiedW, notifiedH int

	nextID  render.FrameID
	pending []request

	nextListener int
	listeners    map[int]func(width, height int)

	panel *ui.Panel

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame creates a host for bg sized to the configured window. The
// background is mounted on the first Update, once ebiten has laid out the
// window.
func NewGame(bg *background.Background, logger golog.Logger) *Game {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	cfg := bg.Config()
	g := &Game{
		bg:     bg,
		logger: logger,
		surf: &screenSurface{
			w:          cfg.WindowWidth,
			h:          cfg.WindowHeight,
			background: cfg.Background.RGBA().NRGBA(),
		},
		notifiedW: cfg.WindowWidth,
		notifiedH: cfg.WindowHeight,
		listeners: make(map[int]func(width, height int)),
	}
	if cfg.ShowStats {
		g.panel = g.newStatsPanel()
	}
	return g
}

// Context implements render.Canvas. The surface is available as soon as
// the window has a non-empty size.
func (g *Game) Context() (render.Surface, bool) {
	if g.surf.w <= 0 || g.surf.h <= 0 {
		return nil, false
	}
	return g.surf, true
}

// RequestFrame implements render.Scheduler: cb runs in the next Draw.
func (g *Game) RequestFrame(cb func()) render.FrameID {
	g.nextID++
	g.pending = append(g.pending, request{id: g.nextID, cb: cb})
	return g.nextID
}

// CancelFrame implements render.Scheduler.
func (g *Game) CancelFrame(id render.FrameID) {
	for i, r := range g.pending {
		if r.id == id {
			g.pending = append(g.pending[:i], g.pending[i+1:]...)
			return
		}
	}
}

// OnResize registers fn for window size changes.
func (g *Game) OnResize(fn func(width, height int)) (cancel func()) {
	g.nextListener++
	key := g.nextListener
	g.listeners[key] = fn
	return func() { delete(g.listeners, key) }
}

// ViewportWidth is the window width in device-independent pixels.
func (g *Game) ViewportWidth() int { return g.surf.w }

func (g *Game) mount() {
	if g.bg.Mounted() {
		return
	}
	err := g.bg.Mount(g)
	switch {
	case err == nil:
		// the field was just sized to the current layout
		g.notifiedW, g.notifiedH = g.surf.w, g.surf.h
	case errors.Is(err, background.ErrSurfaceNotReady):
		// retried on the next Update
	default:
		g.logger.Warnf("ebitenhost: mount: %v", err)
	}
}

// step dispatches a pending resize, then runs the frame callbacks queued
// before it. Callbacks requested meanwhile wait for the next step.
func (g *Game) step() {
	if g.surf.w != g.notifiedW || g.surf.h != g.notifiedH {
		g.notifiedW, g.notifiedH = g.surf.w, g.surf.h
		g.logger.Debugf("ebitenhost: window resized to %dx%d", g.surf.w, g.surf.h)
		for _, fn := range g.listeners {
			fn(g.surf.w, g.surf.h)
		}
	}
	batch := g.pending
	g.pending = nil
	for _, r := range batch {
		r.cb()
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.bg.Unmount()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.toggleStats()
	}
	g.mount()
	if g.panel != nil {
		g.panel.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	g.surf.img = screen
	g.step()
	g.surf.img = nil

	if g.panel != nil {
		g.panel.Draw(screen)
	}
}

// Layout follows the window: one logical pixel per device-independent
// pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surf.w, g.surf.h = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.surf.w, g.surf.h
}

func (g *Game) toggleStats() {
	if g.panel != nil {
		g.panel = nil
		return
	}
	g.panel = g.newStatsPanel()
}

func (g *Game) newStatsPanel() *ui.Panel {
	p := ui.NewPanel(10, 10, 220, "Network background")
	p.AddRow("FPS", func() string { return fmt.Sprintf("%.1f", ebiten.ActualFPS()) })
	p.AddRow("TPS", func() string { return fmt.Sprintf("%.1f", ebiten.ActualTPS()) })
	p.AddRow("Update", func() string { return fmt.Sprintf("%.2fms", g.updateAvg) })
	p.AddRow("Draw", func() string { return fmt.Sprintf("%.2fms", g.drawAvg) })
	p.AddRow("Particles", func() string { return fmt.Sprint(g.stats().Particles) })
	p.AddRow("Links", func() string { return fmt.Sprint(g.stats().Links) })
	p.AddRow("Field", func() string {
		return fmt.Sprintf("#%d %dx%d", g.stats().Generation, g.surf.w, g.surf.h)
	})

	grid := g.bg.Config().SpatialGrid
	if l := g.bg.Loop(); l != nil {
		grid = l.Linker().Grid
	}
	p.AddWidget(ui.NewCheckbox("Spatial grid", grid, func(on bool) {
		if l := g.bg.Loop(); l != nil {
			l.Linker().Grid = on
		}
	}))
	p.AddWidget(ui.NewButton("Reshuffle", func() {
		g.bg.Resize(g.surf.w, g.surf.h)
	}))
	return p
}

func (g *Game) stats() render.Stats {
	if l := g.bg.Loop(); l != nil {
		return l.Stats()
	}
	return render.Stats{}
}
