package field

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// spatialGrid buckets particle indices by cell. With a cell size equal to
// the link threshold, any pair closer than the threshold sits in the same
// or an adjacent cell.
type spatialGrid struct {
	threshold float64
	cellSize  float64
	cells     map[gridKey][]int
	scratch   []int
}

func newSpatialGrid(threshold float64) *spatialGrid {
	// Clamp to avoid tiny grids or div by zero
	return &spatialGrid{
		threshold: threshold,
		cellSize:  math.Max(threshold, 1),
		cells:     make(map[gridKey][]int),
	}
}

// rebuild re-buckets every particle. Slices are truncated rather than
// dropped so their backing arrays are reused from frame to frame.
func (g *spatialGrid) rebuild(ps []Particle) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i := range ps {
		key := g.cellOf(ps[i].Pos)
		g.cells[key] = append(g.cells[key], i)
	}
}

// cellOf floors so that overshooting (negative) coordinates land in cell -1
// instead of sharing cell 0.
func (g *spatialGrid) cellOf(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// neighborsAfter returns, in ascending order, the indices greater than i
// found in the 3x3 block of cells around pos. The returned slice is only
// valid until the next call.
func (g *spatialGrid) neighborsAfter(i int, pos geometry.Vector2D) []int {
	g.scratch = g.scratch[:0]
	c := g.cellOf(pos)
	for x := c.x - 1; x <= c.x+1; x++ {
		for y := c.y - 1; y <= c.y+1; y++ {
			for _, j := range g.cells[gridKey{x: x, y: y}] {
				if j > i {
					g.scratch = append(g.scratch, j)
				}
			}
		}
	}
	slices.Sort(g.scratch)
	return g.scratch
}
