// Package field owns the particle population of the network background:
// generation on mount, full regeneration on resize, per-particle drift with
// edge reflection and the proximity links drawn between particles.
package field

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

// Field is the full particle set plus the surface dimensions it was
// generated for. Particle order is stable for the lifetime of the Field.
type Field struct {
	Particles  []Particle
	Width      float64
	Height     float64
	Generation uint64
}

// New builds a Field from explicit particles. The slice is copied.
func New(width, height float64, particles ...Particle) *Field {
	ps := make([]Particle, len(particles))
	copy(ps, particles)
	return &Field{
		Particles: ps,
		Width:     width,
		Height:    height,
	}
}

// Len is the number of particles, zero for a nil Field.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Particles)
}

// Params controls how a Field is populated.
type Params struct {
	// Population
	SmallCount            int // used below SmallScreenBreakpoint
	LargeCount            int
	SmallScreenBreakpoint int // viewport width in logical pixels

	// Drift
	MaxSpeed float64 // per axis, velocity drawn from [-MaxSpeed, MaxSpeed)

	// Size
	MinRadius float64
	MaxRadius float64
}

// DefaultParams gives a slow, sparse drift.
func DefaultParams() Params {
	return Params{
		SmallCount:            40,
		LargeCount:            70,
		SmallScreenBreakpoint: 768,
		MaxSpeed:              0.15,
		MinRadius:             1.0,
		MaxRadius:             2.5,
	}
}

// Count picks the particle count for a viewport width.
func (p Params) Count(viewportWidth int) int {
	n := p.LargeCount
	if viewportWidth < p.SmallScreenBreakpoint {
		n = p.SmallCount
	}
	return max(n, 0)
}

// Manager owns the current Field and regenerates it on resize.
// It is not safe for concurrent use: the host drives it from the same
// execution context as the render loop.
type Manager struct {
	params     Params
	rng        *rand.Rand
	viewport   func() int
	logger     golog.Logger
	current    *Field
	generation uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the random source, mostly for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithSeed seeds a PCG source with a fixed seed.
func WithSeed(seed uint64) Option {
	return func(m *Manager) { m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithViewport sets the function that reports the host viewport width used
// by the count policy. Without it the surface width is used.
func WithViewport(fn func() int) Option {
	return func(m *Manager) { m.viewport = fn }
}

// WithLogger sets the logger.
func WithLogger(l golog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager with no Field yet.
func NewManager(params Params, opts ...Option) *Manager {
	m := &Manager{
		params: params,
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// Params returns the population parameters.
func (m *Manager) Params() Params { return m.params }

// Field returns the current Field, nil before the first Initialize.
func (m *Manager) Field() *Field { return m.current }

// Initialize generates a brand-new Field for a width x height surface and
// makes it current. A zero dimension is accepted and yields a degenerate
// field where every coordinate on that axis is 0; negative dimensions are
// treated as zero.
func (m *Manager) Initialize(width, height int) *Field {
	width, height = max(width, 0), max(height, 0)
	w, h := float64(width), float64(height)

	viewportWidth := width
	if m.viewport != nil {
		viewportWidth = m.viewport()
	}
	n := m.params.Count(viewportWidth)

	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = m.spawn(w, h)
	}

	m.generation++
	m.current = &Field{
		Particles:  particles,
		Width:      w,
		Height:     h,
		Generation: m.generation,
	}
	m.logger.Debugf("field #%d: %d particles on %dx%d (viewport %d)",
		m.generation, n, width, height, viewportWidth)
	return m.current
}

// OnResize discards the current Field and generates a new one for the new
// dimensions. Nothing from the previous particle set is reused.
func (m *Manager) OnResize(newWidth, newHeight int) *Field {
	return m.Initialize(newWidth, newHeight)
}

// Reset drops the current Field.
func (m *Manager) Reset() {
	m.current = nil
}

func (m *Manager) spawn(w, h float64) Particle {
	p := m.params
	return Particle{
		Pos: geometry.Vector2D{
			X: m.rng.Float64() * w,
			Y: m.rng.Float64() * h,
		},
		Vel: geometry.Vector2D{
			X: m.rng.Float64()*2 - 1,
			Y: m.rng.Float64()*2 - 1,
		}.Mul(p.MaxSpeed),
		Radius: p.MinRadius + m.rng.Float64()*(p.MaxRadius-p.MinRadius),
	}
}
