package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Start", 0, 0},
		{"End", 1, 1},
		{"Midpoint", 0.5, 0.5},
		{"Below range clamps", -2, 0},
		{"Above range clamps", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EaseInOutCubic(tt.in)
			if math.Abs(got-tt.want) > tol {
				t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	// Monotonic over [0,1].
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotonic at t=%v", float64(i)/100)
		}
		prev = v
	}
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name   string
		v      mgl64.Vec3
		max    float64
		wantLn float64
	}{
		{"Under limit unchanged", mgl64.Vec3{1, 0, 0}, 5, 1},
		{"Over limit clamped", mgl64.Vec3{3, 4, 0}, 2, 2},
		{"Zero max", mgl64.Vec3{1, 1, 1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampMagnitude(tt.v, tt.max)
			if math.Abs(got.Len()-tt.wantLn) > 1e-9 {
				t.Errorf("len = %v, want %v", got.Len(), tt.wantLn)
			}
		})
	}
}

func TestProjectOnPlane(t *testing.T) {
	n := mgl64.Vec3{0, 1, 0}
	v := mgl64.Vec3{3, 5, -2}
	got := ProjectOnPlane(v, n)
	if math.Abs(got.Dot(n)) > tol {
		t.Errorf("projected vector not orthogonal to normal: dot = %v", got.Dot(n))
	}
	if !vecNear(got, mgl64.Vec3{3, 0, -2}, tol) {
		t.Errorf("ProjectOnPlane = %v", got)
	}

	// Zero normal leaves the vector alone.
	if !vecNear(ProjectOnPlane(v, mgl64.Vec3{}), v, tol) {
		t.Error("zero normal should return v unchanged")
	}
}

func TestMoveToward(t *testing.T) {
	cur := mgl64.Vec3{0, 0, 0}
	tgt := mgl64.Vec3{10, 0, 0}

	got := MoveToward(cur, tgt, 1)
	if !vecNear(got, mgl64.Vec3{1, 0, 0}, tol) {
		t.Errorf("step = %v", got)
	}

	// Never overshoots.
	got = MoveToward(mgl64.Vec3{9.5, 0, 0}, tgt, 1)
	if !vecNear(got, tgt, tol) {
		t.Errorf("should land exactly on target, got %v", got)
	}
}

func TestQuadraticBezier(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	ctrl := mgl64.Vec3{1, 2, 0}
	end := mgl64.Vec3{2, 0, 0}

	if !vecNear(QuadraticBezier(start, ctrl, end, 0), start, tol) {
		t.Error("t=0 should be the start point")
	}
	if !vecNear(QuadraticBezier(start, ctrl, end, 1), end, tol) {
		t.Error("t=1 should be the end point")
	}
	// Clamped past the ends.
	if !vecNear(QuadraticBezier(start, ctrl, end, 2.5), end, tol) {
		t.Error("t>1 should clamp to the end point")
	}
	// Midpoint lies above the chord because of the control lift.
	mid := QuadraticBezier(start, ctrl, end, 0.5)
	if mid.Y() <= 0 {
		t.Errorf("arc midpoint should be lifted, got %v", mid)
	}
}

func TestLookRotation(t *testing.T) {
	fwd := mgl64.Vec3{1, 0, 0}
	up := mgl64.Vec3{0, 1, 0}
	q := LookRotation(fwd, up)

	if !vecNear(Forward(q), fwd, 1e-9) {
		t.Errorf("forward = %v, want %v", Forward(q), fwd)
	}
	if !vecNear(Up(q), up, 1e-9) {
		t.Errorf("up = %v, want %v", Up(q), up)
	}

	// Degenerate input falls back to identity.
	q = LookRotation(mgl64.Vec3{}, up)
	if !vecNear(Forward(q), AxisForward, tol) {
		t.Error("zero forward should fall back to identity")
	}
}

func TestDeltaAxisAngle(t *testing.T) {
	from := mgl64.QuatIdent()
	to := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	axis, angle := DeltaAxisAngle(from, to)
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %v, want %v", angle, math.Pi/2)
	}
	if !vecNear(axis, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("axis = %v", axis)
	}

	// Identical orientations decompose to zero.
	axis, angle = DeltaAxisAngle(to, to)
	if angle != 0 || !vecNear(axis, mgl64.Vec3{}, tol) {
		t.Errorf("identical orientations: axis=%v angle=%v", axis, angle)
	}

	// Always the short way around.
	to = mgl64.QuatRotate(3*math.Pi/2, mgl64.Vec3{0, 1, 0})
	_, angle = DeltaAxisAngle(from, to)
	if angle > math.Pi+tol {
		t.Errorf("angle %v exceeds pi, not shortest arc", angle)
	}
}

func TestSlerpClamps(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 0, 1})

	got := Slerp(a, b, 2)
	if AngleBetween(got, b) > 1e-9 {
		t.Error("t>1 should clamp to the end orientation")
	}
	got = Slerp(a, b, -1)
	if AngleBetween(got, a) > 1e-9 {
		t.Error("t<0 should clamp to the start orientation")
	}
}

func TestCurveEvaluate(t *testing.T) {
	c := NewCurve(Key{T: -1, V: 2}, Key{T: 0, V: 1.2}, Key{T: 1, V: 1})

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Below first key clamps", -5, 2},
		{"First key", -1, 2},
		{"Interpolated", -0.5, 1.6},
		{"Middle key", 0, 1.2},
		{"Interpolated upper", 0.5, 1.1},
		{"Last key", 1, 1},
		{"Above last key clamps", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Evaluate(tt.in)
			if math.Abs(got-tt.want) > tol {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	// Zero curve is flat 1 so scaled quantities pass through.
	var zero Curve
	if zero.Evaluate(0.3) != 1 {
		t.Error("zero curve should evaluate to 1")
	}
}

func TestSafeNormalize(t *testing.T) {
	if !vecNear(SafeNormalize(mgl64.Vec3{}), mgl64.Vec3{}, tol) {
		t.Error("zero vector should normalize to zero, not NaN")
	}
	got := SafeNormalize(mgl64.Vec3{0, 0, 5})
	if math.Abs(got.Len()-1) > tol {
		t.Errorf("normalized length = %v", got.Len())
	}
}
