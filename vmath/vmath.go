// Package vmath provides the float64 3D math helpers the locomotion
// core needs on top of mgl64: plane projection, rate-limited approach,
// quaternion decomposition, step-arc interpolation and response curves.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the magnitude below which vectors are treated as zero.
const Epsilon = 1e-9

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

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// IsZero reports whether v is the zero vector within Epsilon.
func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// SafeNormalize returns v normalized, or the zero vector if v is
// (near) zero. Never produces NaN components.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// EaseInOutCubic maps t in [0,1] to a cubic in-out curve: slow start,
// slow end. Input is clamped so out-of-range time stays at the bounds.
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// MoveTowardScalar advances current toward target by at most maxDelta.
func MoveTowardScalar(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}
