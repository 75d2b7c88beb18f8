package render_test

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/field"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/host/manual"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
)

func particleAt(x, y float64) field.Particle {
	return field.Particle{Pos: geometry.Vector2D{X: x, Y: y}, Radius: 1.5}
}

// Two resting particles 50px apart: two dots and one link at
// 0.15 * (1 - 50/120).
func TestDrawFrame_TwoParticles(t *testing.T) {
	rec := manual.NewRecorder(1000, 1000)
	f := field.New(1000, 1000, particleAt(0, 0), particleAt(50, 0))
	linker := field.NewLinker(120, 0.15, false)

	st, _ := render.DrawFrame(rec, f, render.DefaultStyle(), linker, nil)

	if st.Particles != 2 || st.Links != 1 || st.Reflected != 0 {
		t.Errorf("stats = %+v; want 2 particles, 1 link, 0 reflected", st)
	}
	if rec.Ops[0].Kind != manual.OpClear {
		t.Errorf("first op = %v; want clear", rec.Ops[0].Kind)
	}
	if got := rec.Count(manual.OpCircle); got != 2 {
		t.Errorf("circles = %d; want 2", got)
	}
	for _, c := range rec.Filter(manual.OpCircle) {
		if c.Color != render.White.WithAlpha(0.2) {
			t.Errorf("circle color = %v; want rgba(255, 255, 255, 0.2)", c.Color)
		}
		if c.Radius != 1.5 {
			t.Errorf("circle radius = %v; want 1.5", c.Radius)
		}
	}

	lines := rec.Filter(manual.OpLine)
	if len(lines) != 1 {
		t.Fatalf("lines = %d; want 1", len(lines))
	}
	ln := lines[0]
	if ln.X0 != 0 || ln.Y0 != 0 || ln.X1 != 50 || ln.Y1 != 0 {
		t.Errorf("line = (%v,%v)-(%v,%v); want (0,0)-(50,0)", ln.X0, ln.Y0, ln.X1, ln.Y1)
	}
	want := 0.15 * (1 - 50.0/120)
	if math.Abs(ln.Color.A-want) > 1e-12 || math.Abs(ln.Color.A-0.0875) > 1e-9 {
		t.Errorf("line opacity = %v; want %v", ln.Color.A, want)
	}
	if ln.Width != 0.8 {
		t.Errorf("line width = %v; want 0.8", ln.Width)
	}
}

func TestDrawFrame_OrderAndMotion(t *testing.T) {
	rec := manual.NewRecorder(100, 100)
	p := particleAt(99.9, 50)
	p.Vel = geometry.Vector2D{X: 0.2, Y: 0}
	f := field.New(100, 100, p, particleAt(10, 10))

	st, _ := render.DrawFrame(rec, f, render.DefaultStyle(), field.NewLinker(120, 0.15, false), nil)
	if st.Reflected != 1 {
		t.Errorf("Reflected = %d; want 1", st.Reflected)
	}
	// circles are drawn at the updated, possibly overshooting, position
	c := rec.Filter(manual.OpCircle)[0]
	if math.Abs(c.X0-100.1) > 1e-9 {
		t.Errorf("circle x = %v; want 100.1", c.X0)
	}
	if f.Particles[0].Vel.X != -0.2 {
		t.Errorf("velocity = %v; want reflected -0.2", f.Particles[0].Vel.X)
	}
	// every circle comes before every line
	seenLine := false
	for _, op := range rec.Ops {
		if op.Kind == manual.OpLine {
			seenLine = true
		}
		if op.Kind == manual.OpCircle && seenLine {
			t.Fatal("circle drawn after a line")
		}
	}
}

func TestDrawFrame_NilField(t *testing.T) {
	rec := manual.NewRecorder(10, 10)
	st, _ := render.DrawFrame(rec, nil, render.DefaultStyle(), field.NewLinker(120, 0.15, false), nil)
	if st != (render.Stats{}) {
		t.Errorf("stats = %+v; want zero", st)
	}
	if len(rec.Ops) != 1 || rec.Ops[0].Kind != manual.OpClear {
		t.Errorf("ops = %+v; want a single clear", rec.Ops)
	}
}

func TestLoop_RunsEveryTick(t *testing.T) {
	rec := manual.NewRecorder(1000, 1000)
	host := manual.New(rec)
	f := field.New(1000, 1000, particleAt(0, 0), particleAt(50, 0))

	loop := render.NewLoop(host, host, func() *field.Field { return f })
	loop.Start()
	loop.Start() // no second request
	if host.Pending() != 1 {
		t.Fatalf("pending = %d; want 1", host.Pending())
	}

	host.Run(5)
	if loop.Frames() != 5 {
		t.Errorf("frames = %d; want 5", loop.Frames())
	}
	if got := rec.Count(manual.OpClear); got != 5 {
		t.Errorf("clears = %d; want 5", got)
	}
	if got := loop.Stats(); got.Particles != 2 || got.Links != 1 {
		t.Errorf("last stats = %+v", got)
	}
	if host.Pending() != 1 {
		t.Errorf("pending after run = %d; want 1", host.Pending())
	}
}

func TestLoop_StopMeansNoMoreDrawing(t *testing.T) {
	rec := manual.NewRecorder(500, 500)
	host := manual.New(rec)
	m := field.NewManager(field.DefaultParams(), field.WithSeed(1))
	m.Initialize(500, 500)

	loop := render.NewLoop(host, host, m.Field)
	loop.Start()
	host.Run(3)

	loop.Stop()
	drawn := len(rec.Ops)
	if host.Pending() != 0 {
		t.Errorf("pending after Stop = %d; want 0", host.Pending())
	}
	host.Run(10)
	if len(rec.Ops) != drawn {
		t.Errorf("%d operations after Stop", len(rec.Ops)-drawn)
	}
	if loop.Running() {
		t.Error("loop still running")
	}
}

// A host that cannot revoke requests still fires the old callback; it must
// be a no-op.
type stubbornScheduler struct {
	queue []func()
}

func (s *stubbornScheduler) RequestFrame(cb func()) render.FrameID {
	s.queue = append(s.queue, cb)
	return render.FrameID(len(s.queue))
}

func (s *stubbornScheduler) CancelFrame(render.FrameID) {}

func (s *stubbornScheduler) tick() {
	q := s.queue
	s.queue = nil
	for _, cb := range q {
		cb()
	}
}

func TestLoop_StaleCallbackIsNoop(t *testing.T) {
	rec := manual.NewRecorder(100, 100)
	canvas := manual.New(rec)
	sched := &stubbornScheduler{}
	f := field.New(100, 100, particleAt(1, 1))

	loop := render.NewLoop(canvas, sched, func() *field.Field { return f })
	loop.Start()
	sched.tick()
	drawn := len(rec.Ops)

	loop.Stop()
	for range 3 {
		sched.tick()
	}
	if len(rec.Ops) != drawn {
		t.Errorf("stale callback drew %d operations", len(rec.Ops)-drawn)
	}

	// restarting must not revive the callbacks of the previous run twice
	loop.Start()
	loop.Stop()
	loop.Start()
	sched.tick()
	if got := rec.Count(manual.OpClear); got != 2 {
		t.Errorf("clears = %d; want 2 (one frame before stop, one after restart)", got)
	}
}

func TestLoop_SurfaceLostStopsLoop(t *testing.T) {
	rec := manual.NewRecorder(100, 100)
	host := manual.New(rec)
	f := field.New(100, 100, particleAt(1, 1))

	loop := render.NewLoop(host, host, func() *field.Field { return f })
	loop.Start()
	host.Tick()

	host.Detach()
	host.Tick()
	if loop.Running() {
		t.Error("loop should stop once the surface is gone")
	}
	if host.Pending() != 0 {
		t.Errorf("pending = %d; want 0", host.Pending())
	}
	if loop.Frames() != 1 {
		t.Errorf("frames = %d; want 1", loop.Frames())
	}
}

func TestLoop_NoSurfaceAtAll(t *testing.T) {
	host := manual.New(nil)
	loop := render.NewLoop(host, host, func() *field.Field { return nil })
	loop.Start()
	host.Run(3)
	if loop.Running() || loop.Frames() != 0 {
		t.Errorf("running=%v frames=%d; want stopped with no frames", loop.Running(), loop.Frames())
	}
}

func TestLoop_PicksUpNewField(t *testing.T) {
	rec := manual.NewRecorder(100, 100)
	host := manual.New(rec)
	current := field.New(100, 100, particleAt(1, 1))

	loop := render.NewLoop(host, host, func() *field.Field { return current })
	loop.Start()
	host.Tick()

	current = field.New(100, 100, particleAt(1, 1), particleAt(2, 2), particleAt(3, 3))
	rec.Reset()
	host.Tick()
	if got := rec.Count(manual.OpCircle); got != 3 {
		t.Errorf("circles after swap = %d; want 3", got)
	}
}

func TestRGBA(t *testing.T) {
	c := render.White.WithAlpha(0.2)
	if got := c.String(); got != "rgba(255, 255, 255, 0.2)" {
		t.Errorf("String = %q", got)
	}
	if got := c.NRGBA().A; got != 51 {
		t.Errorf("NRGBA alpha = %d; want 51", got)
	}
	if got := c.WithAlpha(3).NRGBA().A; got != 255 {
		t.Errorf("clamped alpha = %d; want 255", got)
	}
	if got := c.WithAlpha(-1).NRGBA().A; got != 0 {
		t.Errorf("clamped alpha = %d; want 0", got)
	}
}
