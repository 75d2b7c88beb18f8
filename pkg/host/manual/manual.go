// Package manual is a host driven by explicit calls instead of a display:
// Tick fires the pending frame callbacks and Resize notifies listeners, both
// synchronously on the caller's goroutine. The headless snapshot command
// renders through it, and tests use it to step the render loop frame by
// frame.
package manual

import (
	"slices"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
)

// Resizer is implemented by surfaces whose backing store can be resized.
type Resizer interface {
	Resize(width, height int)
}

type request struct {
	id render.FrameID
	cb func()
}

// Host implements render.Canvas, render.Scheduler and resize notification.
// It is not safe for concurrent use.
type Host struct {
	surface  render.Surface
	attached bool
	viewport int

	nextID  render.FrameID
	pending []request

	nextListener int
	listeners    map[int]func(width, height int)
}

// New creates a Host with s attached. A nil surface means "not ready".
func New(s render.Surface) *Host {
	return &Host{
		surface:   s,
		attached:  s != nil,
		listeners: make(map[int]func(width, height int)),
	}
}

// Context implements render.Canvas.
func (h *Host) Context() (render.Surface, bool) {
	if !h.attached || h.surface == nil {
		return nil, false
	}
	return h.surface, true
}

// Attach (re)attaches a surface.
func (h *Host) Attach(s render.Surface) {
	h.surface = s
	h.attached = s != nil
}

// Detach simulates a lost drawing context.
func (h *Host) Detach() {
	h.attached = false
}

// RequestFrame implements render.Scheduler.
func (h *Host) RequestFrame(cb func()) render.FrameID {
	h.nextID++
	h.pending = append(h.pending, request{id: h.nextID, cb: cb})
	return h.nextID
}

// CancelFrame implements render.Scheduler.
func (h *Host) CancelFrame(id render.FrameID) {
	h.pending = slices.DeleteFunc(h.pending, func(r request) bool { return r.id == id })
}

// Pending is the number of frame requests waiting for the next Tick.
func (h *Host) Pending() int { return len(h.pending) }

// Tick plays one display refresh: every callback requested before the tick
// runs once, in request order. Requests made by those callbacks wait for
// the next tick. It returns the number of callbacks run.
func (h *Host) Tick() int {
	batch := h.pending
	h.pending = nil
	for _, r := range batch {
		r.cb()
	}
	return len(batch)
}

// Run plays n ticks.
func (h *Host) Run(n int) {
	for range n {
		h.Tick()
	}
}

// OnResize registers fn to be called on every Resize. The returned function
// removes it.
func (h *Host) OnResize(fn func(width, height int)) (cancel func()) {
	h.nextListener++
	key := h.nextListener
	h.listeners[key] = fn
	return func() { delete(h.listeners, key) }
}

// Listeners is the number of registered resize listeners.
func (h *Host) Listeners() int { return len(h.listeners) }

// Resize resizes the attached surface when it supports it, then notifies
// the listeners synchronously.
func (h *Host) Resize(width, height int) {
	if r, ok := h.surface.(Resizer); ok {
		r.Resize(width, height)
	}
	keys := make([]int, 0, len(h.listeners))
	for k := range h.listeners {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if fn, ok := h.listeners[k]; ok {
			fn(width, height)
		}
	}
}

// SetViewportWidth overrides the viewport width. Zero means "same as the
// surface width".
func (h *Host) SetViewportWidth(w int) { h.viewport = w }

// ViewportWidth reports the viewport width used by the count policy.
func (h *Host) ViewportWidth() int {
	if h.viewport > 0 {
		return h.viewport
	}
	if h.surface == nil {
		return 0
	}
	w, _ := h.surface.Size()
	return w
}
