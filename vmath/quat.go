package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local basis convention: +Y is up, +Z is forward, +X is right.
var (
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
	AxisRight   = mgl64.Vec3{1, 0, 0}
)

// Up returns the rotated local up axis.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(AxisUp)
}

// Forward returns the rotated local forward axis.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(AxisForward)
}

// Right returns the rotated local right axis.
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(AxisRight)
}

// LookRotation builds the orientation whose forward axis points along
// fwd and whose up axis lies as close to up as the orthogonality
// constraint allows. Degenerate input (zero or parallel vectors) falls
// back to the identity orientation.
func LookRotation(fwd, up mgl64.Vec3) mgl64.Quat {
	f := SafeNormalize(fwd)
	if IsZero(f) {
		return mgl64.QuatIdent()
	}
	r := SafeNormalize(up.Cross(f))
	if IsZero(r) {
		// fwd parallel to up: pick any perpendicular right axis.
		r = SafeNormalize(AxisUp.Cross(f))
		if IsZero(r) {
			r = AxisRight
		}
	}
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// DeltaAxisAngle decomposes the shortest-arc rotation carrying from
// onto to, as a unit axis and an angle in radians. Returns a zero axis
// and zero angle when the orientations already coincide.
func DeltaAxisAngle(from, to mgl64.Quat) (axis mgl64.Vec3, angle float64) {
	delta := to.Mul(from.Inverse()).Normalize()
	// Negating a quaternion leaves the rotation unchanged; force the
	// scalar part positive so the decomposed angle is the short way.
	if delta.W < 0 {
		delta = mgl64.Quat{W: -delta.W, V: delta.V.Mul(-1)}
	}
	w := Clamp(delta.W, -1, 1)
	angle = 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < Epsilon {
		return mgl64.Vec3{}, 0
	}
	return delta.V.Mul(1 / s), angle
}

// Slerp spherically interpolates between two orientations; t is
// clamped to [0,1] so the result never extrapolates past the ends.
func Slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	return mgl64.QuatSlerp(from.Normalize(), to.Normalize(), Clamp01(t))
}

// AngleBetween returns the absolute angle in radians between two
// orientations.
func AngleBetween(a, b mgl64.Quat) float64 {
	_, angle := DeltaAxisAngle(a, b)
	return angle
}
