// Package background ties a field.Manager and a render.Loop to a host: it
// sizes the particle field to the host surface, regenerates it on resize
// and tears everything down on Unmount.
package background

import (
	"errors"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/field"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
	golog "github.com/tochemey/goakt/v3/log"
)

var (
	// ErrSurfaceNotReady is returned by Mount when the host has no drawing
	// surface yet. Callers skip setup; it is never shown to the user.
	ErrSurfaceNotReady = errors.New("background: surface not ready")
	// ErrAlreadyMounted is returned by Mount on a mounted Background.
	ErrAlreadyMounted = errors.New("background: already mounted")
)

// Host is what a Background needs from its environment.
type Host interface {
	render.Canvas
	render.Scheduler
	OnResize(fn func(width, height int)) (cancel func())
	ViewportWidth() int
}

// Background is not safe for concurrent use: every call, like every frame
// callback, belongs on the host's rendering goroutine.
type Background struct {
	cfg     *Config
	logger  golog.Logger
	manager *field.Manager

	host     Host
	loop     *render.Loop
	unsubscr func()
}

// New builds a Background from cfg. A nil cfg means DefaultConfig and a nil
// logger discards everything.
func New(cfg *Config, logger golog.Logger) *Background {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	b := &Background{cfg: cfg, logger: logger}

	opts := []field.Option{
		field.WithLogger(logger),
		field.WithViewport(b.viewportWidth),
	}
	if cfg.Seed != 0 {
		opts = append(opts, field.WithSeed(cfg.Seed))
	}
	b.manager = field.NewManager(cfg.Params(), opts...)
	return b
}

func (b *Background) viewportWidth() int {
	if b.host == nil {
		return 0
	}
	return b.host.ViewportWidth()
}

// Mount sizes a new field to the host surface, subscribes to resizes and
// starts drawing.
func (b *Background) Mount(h Host) error {
	if b.host != nil {
		return ErrAlreadyMounted
	}
	s, ok := h.Context()
	if !ok || s == nil {
		b.logger.Infof("background: no drawing surface, skipping setup")
		return ErrSurfaceNotReady
	}

	b.host = h
	w, ht := s.Size()
	b.manager.Initialize(w, ht)
	b.unsubscr = h.OnResize(b.Resize)

	b.loop = render.NewLoop(h, h, b.manager.Field,
		render.WithStyle(b.cfg.Style()),
		render.WithLinker(b.cfg.Linker()),
		render.WithLogger(b.logger),
	)
	b.loop.Start()
	b.logger.Infof("background: mounted on %dx%d with %d particles", w, ht, b.manager.Field().Len())
	return nil
}

// Unmount stops the loop, releases the resize subscription and drops the
// field. Calling it on an unmounted Background does nothing.
func (b *Background) Unmount() {
	if b.host == nil {
		return
	}
	b.loop.Stop()
	if b.unsubscr != nil {
		b.unsubscr()
		b.unsubscr = nil
	}
	b.manager.Reset()
	b.logger.Infof("background: unmounted after %d frames", b.loop.Frames())
	b.host = nil
}

// Resize regenerates the field for the new size. Ignored when unmounted.
func (b *Background) Resize(width, height int) {
	if b.host == nil {
		return
	}
	b.manager.OnResize(width, height)
}

// Mounted reports whether the Background is attached to a host.
func (b *Background) Mounted() bool { return b.host != nil }

// Field returns the current field, nil when unmounted.
func (b *Background) Field() *field.Field { return b.manager.Field() }

// Loop returns the render loop of the last Mount, nil before it.
func (b *Background) Loop() *render.Loop { return b.loop }

// Config returns the configuration in use.
func (b *Background) Config() *Config { return b.cfg }
