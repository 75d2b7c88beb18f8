package manual

import "github.com/lao-tseu-is-alive/go-network-background/pkg/render"

// OpKind is the kind of a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded drawing call.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64 // circle centre in X0/Y0
	Radius         float64
	Width          float64
	Color          render.RGBA
}

// Recorder is a render.Surface that remembers every call instead of
// drawing.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a Recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, radius float64, c render.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X0: x, Y0: y, Radius: radius, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c render.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

// Resize implements Resizer.
func (r *Recorder) Resize(width, height int) {
	r.W, r.H = width, height
}

// Count returns how many operations of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the recorded operations of kind k.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets the recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
