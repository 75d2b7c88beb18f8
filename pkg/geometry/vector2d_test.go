package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4} // 3-4-5 triangle

	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v; want 5", got)
	}
}

func TestVector_Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector2D
		want float64
	}{
		{"Same point", Vector2D{5, 5}, Vector2D{5, 5}, 0},
		{"Horizontal", Vector2D{0, 0}, Vector2D{50, 0}, 50},
		{"Diagonal", Vector2D{1, 1}, Vector2D{4, 5}, 5},
		{"Negative overshoot", Vector2D{-0.1, 0}, Vector2D{0.2, 0.4}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceTo(tt.b); !floatEquals(got, tt.want) {
				t.Errorf("DistanceTo = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestVector_Flip(t *testing.T) {
	v := Vector2D{0.1, -0.2}
	if got := v.FlipX(); !got.Eq(Vector2D{-0.1, -0.2}) {
		t.Errorf("FlipX = %v", got)
	}
	if got := v.FlipY(); !got.Eq(Vector2D{0.1, 0.2}) {
		t.Errorf("FlipY = %v", got)
	}
	if got := v.FlipX().FlipX(); !got.Eq(v) {
		t.Errorf("FlipX twice = %v; want %v", got, v)
	}
}
