package render

import (
	"time"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/field"
	golog "github.com/tochemey/goakt/v3/log"
)

// Loop redraws the current field on every frame until Stop is called.
//
// Every method, and every frame callback, must run on the host's single
// rendering context. The field is read through source at the start of each
// frame, so a resize that swaps the field is picked up by the next frame
// without restarting the loop.
type Loop struct {
	canvas Canvas
	sched  Scheduler
	source func() *field.Field
	style  Style
	linker *field.Linker
	logger golog.Logger

	running bool
	pending FrameID
	queued  bool
	token   uint64 // identifies the only callback allowed to draw

	frames   uint64
	last     Stats
	frameAvg float64 // rolling average in ms
	links    []field.Link
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithStyle sets the drawing style.
func WithStyle(s Style) LoopOption {
	return func(l *Loop) { l.style = s }
}

// WithLinker sets the link finder.
func WithLinker(lk *field.Linker) LoopOption {
	return func(l *Loop) { l.linker = lk }
}

// WithLogger sets the logger.
func WithLogger(lg golog.Logger) LoopOption {
	return func(l *Loop) { l.logger = lg }
}

// NewLoop creates a stopped Loop. Without options it draws with
// DefaultStyle and links particles closer than 120px at up to 0.15 opacity.
func NewLoop(canvas Canvas, sched Scheduler, source func() *field.Field, opts ...LoopOption) *Loop {
	l := &Loop{
		canvas: canvas,
		sched:  sched,
		source: source,
		style:  DefaultStyle(),
		linker: field.NewLinker(120, 0.15, false),
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start requests the first frame. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.schedule()
}

// Stop cancels the pending frame. Once Stop returns no frame callback of
// this loop touches the surface again, even one the host had already
// queued.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.token++
	if l.queued {
		l.sched.CancelFrame(l.pending)
		l.queued = false
	}
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool { return l.running }

// Frames is the number of frames drawn so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Linker returns the link finder in use. Changing its Grid flag takes
// effect on the next frame.
func (l *Loop) Linker() *field.Linker { return l.linker }

// Stats describes the last drawn frame.
func (l *Loop) Stats() Stats { return l.last }

// FrameAvg is the rolling average of the time spent drawing a frame.
func (l *Loop) FrameAvg() time.Duration {
	return time.Duration(l.frameAvg * float64(time.Millisecond))
}

func (l *Loop) schedule() {
	l.token++
	token := l.token
	l.pending = l.sched.RequestFrame(func() { l.frame(token) })
	l.queued = true
}

func (l *Loop) frame(token uint64) {
	if !l.running || token != l.token {
		return
	}
	l.queued = false

	s, ok := l.canvas.Context()
	if !ok || s == nil {
		l.logger.Warnf("render loop: surface not available after %d frames, stopping", l.frames)
		l.running = false
		return
	}

	start := time.Now()
	l.last, l.links = DrawFrame(s, l.source(), l.style, l.linker, l.links)
	l.frames++
	// Rolling average (exponential moving average)
	l.frameAvg = l.frameAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05

	if l.frames%600 == 0 {
		l.logger.Debugf("render loop: %d frames, field #%d, %d particles, %d links, %.3fms/frame",
			l.frames, l.last.Generation, l.last.Particles, l.last.Links, l.frameAvg)
	}
	l.schedule()
}
