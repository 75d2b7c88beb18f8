package field

import "github.com/lao-tseu-is-alive/go-network-background/pkg/geometry"

// Particle is one drifting point of the field.
// Radius only affects drawing; it never takes part in the motion.
type Particle struct {
	Pos    geometry.Vector2D `json:"pos"`
	Vel    geometry.Vector2D `json:"vel"`
	Radius float64           `json:"radius"`
}

// Advance applies the velocity to the position (Pos += Vel) and then
// reflects each axis independently: when the new coordinate lies outside
// [0, width] (or [0, height]) the matching velocity component is negated.
// The position is left where it is, so a particle may overshoot a bound by
// at most one frame of travel. It reports which axes were flipped.
func (p *Particle) Advance(width, height float64) (flippedX, flippedY bool) {
	p.Pos = p.Pos.Add(p.Vel)

	if p.Pos.X < 0 || p.Pos.X > width {
		p.Vel = p.Vel.FlipX()
		flippedX = true
	}
	if p.Pos.Y < 0 || p.Pos.Y > height {
		p.Vel = p.Vel.FlipY()
		flippedY = true
	}
	return flippedX, flippedY
}

// DistanceTo gives the cartesian distance between two particles.
func (p *Particle) DistanceTo(other *Particle) float64 {
	return p.Pos.DistanceTo(other.Pos)
}
