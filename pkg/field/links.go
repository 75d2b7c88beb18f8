package field

import "math"

// Link is a connection between particles I and J (I < J) closer than the
// linker threshold.
type Link struct {
	I, J     int
	Distance float64
	Opacity  float64
}

// Linker finds the pairs of particles that get a connecting line.
//
// Every unordered pair (i, j), i < j, whose Euclidean distance is strictly
// below Threshold produces a Link with opacity MaxOpacity*(1 - d/Threshold).
// Links come out sorted by (I, J) whichever strategy is used: with Grid set a
// uniform spatial hash of cell size Threshold limits the candidates to the
// 3x3 neighbourhood, otherwise every pair is checked.
type Linker struct {
	Threshold  float64
	MaxOpacity float64
	Grid       bool

	grid *spatialGrid
}

// NewLinker creates a Linker.
func NewLinker(threshold, maxOpacity float64, useGrid bool) *Linker {
	return &Linker{
		Threshold:  threshold,
		MaxOpacity: maxOpacity,
		Grid:       useGrid,
	}
}

// Opacity maps a distance to a line opacity. It decreases linearly from
// MaxOpacity at d = 0 to 0 at d = Threshold and is 0 beyond.
func (l *Linker) Opacity(d float64) float64 {
	if l.Threshold <= 0 || d >= l.Threshold {
		return 0
	}
	return l.MaxOpacity * (1 - d/l.Threshold)
}

// Links appends the links of f to dst and returns the extended slice.
func (l *Linker) Links(f *Field, dst []Link) []Link {
	if f.Len() < 2 || l.Threshold <= 0 {
		return dst
	}
	if l.Grid {
		return l.gridLinks(f.Particles, dst)
	}
	return l.bruteLinks(f.Particles, dst)
}

// bruteLinks is the plain O(n²) scan.
func (l *Linker) bruteLinks(ps []Particle, dst []Link) []Link {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			dst = l.appendIfClose(ps, i, j, dst)
		}
	}
	return dst
}

func (l *Linker) gridLinks(ps []Particle, dst []Link) []Link {
	if l.grid == nil || l.grid.threshold != l.Threshold {
		l.grid = newSpatialGrid(l.Threshold)
	}
	l.grid.rebuild(ps)

	for i := range ps {
		for _, j := range l.grid.neighborsAfter(i, ps[i].Pos) {
			dst = l.appendIfClose(ps, i, j, dst)
		}
	}
	return dst
}

func (l *Linker) appendIfClose(ps []Particle, i, j int, dst []Link) []Link {
	a, b := ps[i].Pos, ps[j].Pos
	// hypot(dx, dy) >= max(|dx|, |dy|): skip the sqrt for far pairs
	if math.Abs(a.X-b.X) >= l.Threshold || math.Abs(a.Y-b.Y) >= l.Threshold {
		return dst
	}
	d := a.DistanceTo(b)
	if d >= l.Threshold {
		return dst
	}
	return append(dst, Link{I: i, J: j, Distance: d, Opacity: l.Opacity(d)})
}
