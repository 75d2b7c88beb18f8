package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq for float64 comparisons.
const (
	Epsilon = 1e-9
)

// Vector2D is a point or a displacement in surface pixel space.
// Fields are exported so literals stay short: Vector2D{X: 1, Y: 2}.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String implements fmt.Stringer with two decimals, handy in debug logs.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Len is the magnitude of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo is the Euclidean distance between two points.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// FlipX negates the horizontal component.
func (v Vector2D) FlipX() Vector2D {
	return Vector2D{-v.X, v.Y}
}

// FlipY negates the vertical component.
func (v Vector2D) FlipY() Vector2D {
	return Vector2D{v.X, -v.Y}
}

// Eq checks if two vectors are approximately equal using Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
