package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MulVec multiplies two vectors component-wise.
func MulVec(a, b cp.Vector) cp.Vector {
	return cp.Vector{X: a.X * b.X, Y: a.Y * b.Y}
}

// ClampVec clamps each component of v to [-limit, limit].
func ClampVec(v cp.Vector, limit float64) cp.Vector {
	return cp.Vector{X: Clamp(v.X, -limit, limit), Y: Clamp(v.Y, -limit, limit)}
}

// AbsVec returns the component-wise absolute value of v.
func AbsVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// FloorDiv returns floor(v / size) as an int. Used for world -> tile coordinates.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
