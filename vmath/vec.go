package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectOnPlane removes the component of v parallel to the plane
// normal n. n must be unit length or zero; a zero normal returns v
// unchanged.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	if IsZero(n) {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n)))
}

// ClampMagnitude limits the magnitude of v to maxLen.
func ClampMagnitude(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if maxLen <= 0 {
		return mgl64.Vec3{}
	}
	lenSq := v.LenSqr()
	if lenSq <= maxLen*maxLen {
		return v
	}
	return v.Mul(maxLen / v.Len())
}

// MoveToward advances current toward target by at most maxDelta,
// without overshooting.
func MoveToward(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist < Epsilon {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// QuadraticBezier evaluates the curve through start, control and end
// at t via two nested linear interpolations. t is clamped to [0,1] so
// the result never leaves the arc.
func QuadraticBezier(start, control, end mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	a := Lerp(start, control, t)
	b := Lerp(control, end, t)
	return Lerp(a, b, t)
}

// Lerp linearly interpolates between a and b; t is not clamped.
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
