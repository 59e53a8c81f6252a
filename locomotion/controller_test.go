package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/surface"
	"github.com/hexfeld/skitter/vmath"
)

const layerGround physics.LayerMask = 1

type forceCall struct {
	v    mgl64.Vec3
	mode physics.ForceMode
}

// recordingBody captures applied forces without integrating them.
type recordingBody struct {
	id   uuid.UUID
	pos  mgl64.Vec3
	rot  mgl64.Quat
	vel  mgl64.Vec3
	avel mgl64.Vec3
	mass float64

	forces  []forceCall
	torques []mgl64.Vec3
}

func newRecordingBody(pos mgl64.Vec3, mass float64) *recordingBody {
	return &recordingBody{id: uuid.New(), pos: pos, rot: mgl64.QuatIdent(), mass: mass}
}

func (b *recordingBody) ID() uuid.UUID               { return b.id }
func (b *recordingBody) Position() mgl64.Vec3        { return b.pos }
func (b *recordingBody) Orientation() mgl64.Quat     { return b.rot }
func (b *recordingBody) Velocity() mgl64.Vec3        { return b.vel }
func (b *recordingBody) AngularVelocity() mgl64.Vec3 { return b.avel }
func (b *recordingBody) Mass() float64               { return b.mass }

func (b *recordingBody) AddForce(v mgl64.Vec3, mode physics.ForceMode) {
	b.forces = append(b.forces, forceCall{v, mode})
}
func (b *recordingBody) AddTorque(v mgl64.Vec3) {
	b.torques = append(b.torques, v)
}

func (b *recordingBody) totalForce(mode physics.ForceMode) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, c := range b.forces {
		if c.mode == mode {
			sum = sum.Add(c.v)
		}
	}
	return sum
}

// fixedReading is a ReadingSource pinned to one snapshot.
type fixedReading struct{ r surface.Reading }

func (f *fixedReading) Reading() surface.Reading { return f.r }

func groundedReading() *fixedReading {
	return &fixedReading{r: surface.Reading{
		State:         surface.StateGrounded,
		GroundNormal:  mgl64.Vec3{0, 1, 0},
		SurfaceNormal: mgl64.Vec3{0, 1, 0},
	}}
}

func testConfig() Config {
	return Config{
		Gravity:           10,
		RideHeight:        0.8,
		FloatRayLength:    2,
		FloatSpring:       100,
		FloatDamper:       10,
		JumpFloatCooldown: 0.25,
		FloatMask:         layerGround,
		UprightSpring:     40,
		UprightDamper:     8,
		MaxSpeed:          4,
		BaseAccel:         25,
		MaxAccelForce:     80,
		MinMoveSpeed:      0.05,
		JumpForce:         6,
	}
}

func floorWorld() *physics.StaticWorld {
	w := physics.NewStaticWorld()
	w.AddPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, layerGround)
	return w
}

func TestFloatSpringPullsTowardRideHeight(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		wantY float64 // spring force component
	}{
		{"Too high pulls down", 1.3, -50}, // (1.3-0.8)*100
		{"Too low pushes up", 0.5, 30},    // (0.5-0.8)*100
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newRecordingBody(mgl64.Vec3{0, tt.y, 0}, 2)
			c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())
			c.PhysicsTick(0.02)

			// Total continuous force = gravity + spring (drive is zero
			// with no intent).
			got := body.totalForce(physics.ForceModeForce)
			wantY := -10.0*2 + tt.wantY
			if math.Abs(got.Y()-wantY) > 1e-9 {
				t.Errorf("force.Y = %v, want %v", got.Y(), wantY)
			}
		})
	}
}

func TestFloatSpringDampsRelativeVelocity(t *testing.T) {
	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1) // exactly at ride height
	body.vel = mgl64.Vec3{0, -2, 0}                    // falling

	c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())
	c.PhysicsTick(0.02)

	// distErr = 0, relVel along down ray = +2, so damper resists the
	// fall with -2*10 along the ray = +20 up.
	got := body.totalForce(physics.ForceModeForce)
	want := -10.0 + 20
	if math.Abs(got.Y()-want) > 1e-9 {
		t.Errorf("force.Y = %v, want %v", got.Y(), want)
	}
}

func TestFloatSpringRidesMovingGround(t *testing.T) {
	w := physics.NewStaticWorld()
	id := w.AddPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, layerGround)
	w.SetColliderVelocity(id, mgl64.Vec3{0, -2, 0})

	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	c := NewController(body, w, w, groundedReading(), testConfig())
	c.PhysicsTick(0.02)

	// The ground falls at 2, the body is still: relative velocity is
	// +2 away from the ground, so the spring pushes down after it.
	got := body.totalForce(physics.ForceModeForce)
	want := -10.0 - 20
	if math.Abs(got.Y()-want) > 1e-9 {
		t.Errorf("force.Y = %v, want %v", got.Y(), want)
	}
}

func TestJumpImpulseAndFloatSuppression(t *testing.T) {
	body := newRecordingBody(mgl64.Vec3{0, 0.5, 0}, 2)
	c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())

	c.Jump()
	imp := body.totalForce(physics.ForceModeImpulse)
	if math.Abs(imp.Y()-6) > 1e-9 || math.Abs(imp.X()) > 1e-9 {
		t.Fatalf("jump impulse = %v, want (0,6,0)", imp)
	}

	// Inside the cooldown the spring stays quiet: only gravity.
	c.PhysicsTick(0.02)
	got := body.totalForce(physics.ForceModeForce)
	if math.Abs(got.Y()-(-20)) > 1e-9 {
		t.Errorf("force.Y during cooldown = %v, want -20 (gravity only)", got.Y())
	}

	// Once the cooldown elapses the spring fires again.
	body.forces = nil
	for i := 0; i < 20; i++ { // 0.4s total, past the 0.25s window
		c.PhysicsTick(0.02)
	}
	got = body.totalForce(physics.ForceModeForce)
	if got.Y() <= -20*20 {
		t.Errorf("spring should resume after cooldown, total force.Y = %v", got.Y())
	}
}

func TestJumpBlendsSurfaceNormalWithUp(t *testing.T) {
	src := &fixedReading{r: surface.Reading{
		State:         surface.StateSurface,
		SurfaceNormal: mgl64.Vec3{-1, 0, 0},
	}}
	body := newRecordingBody(mgl64.Vec3{0, 5, 0}, 1)
	c := NewController(body, physics.NewStaticWorld(), nil, src, testConfig())

	c.Jump()
	imp := body.totalForce(physics.ForceModeImpulse)
	want := mgl64.Vec3{-1, 1, 0}.Normalize().Mul(6)
	if imp.Sub(want).Len() > 1e-9 {
		t.Errorf("jump impulse = %v, want %v", imp, want)
	}
}

func TestGravityRedirectedOnSurface(t *testing.T) {
	src := &fixedReading{r: surface.Reading{
		State:         surface.StateSurface,
		SurfaceNormal: mgl64.Vec3{-1, 0, 0}, // wall to the +x side
	}}
	body := newRecordingBody(mgl64.Vec3{0, 5, 0}, 2)
	c := NewController(body, physics.NewStaticWorld(), nil, src, testConfig())
	c.PhysicsTick(0.02)

	got := body.totalForce(physics.ForceModeForce)
	// Pulled toward the wall (+x), not down.
	if math.Abs(got.X()-20) > 1e-9 {
		t.Errorf("force.X = %v, want 20", got.X())
	}
	if math.Abs(got.Y()) > 1e-9 {
		t.Errorf("force.Y = %v, want 0 (no world gravity on surface)", got.Y())
	}
}

func TestDriveIsTangentialToSurface(t *testing.T) {
	src := &fixedReading{r: surface.Reading{
		State:         surface.StateSurface,
		SurfaceNormal: mgl64.Vec3{-1, 0, 0},
	}}
	body := newRecordingBody(mgl64.Vec3{0, 5, 0}, 1)
	c := NewController(body, physics.NewStaticWorld(), nil, src, testConfig())

	c.SetMovementIntent(mgl64.Vec3{1, 0, 1})
	c.PhysicsTick(0.02)

	if d := c.DesiredAcceleration().Dot(src.r.SurfaceNormal); math.Abs(d) > 1e-9 {
		t.Errorf("desired acceleration not tangential: dot = %v", d)
	}
}

func TestDriveChasesIntent(t *testing.T) {
	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())

	c.SetMovementIntent(mgl64.Vec3{1, 0, 0})
	c.PhysicsTick(0.02)

	// targetVel moved 25*0.02 = 0.5 toward (4,0,0).
	tv := c.TargetVelocity()
	if math.Abs(tv.X()-0.5) > 1e-9 {
		t.Errorf("target velocity = %v, want X 0.5", tv)
	}
	// needed = 0.5/0.02 = 25, within the force bound, along +x.
	if math.Abs(c.DesiredAcceleration().X()-25) > 1e-9 {
		t.Errorf("desired acceleration = %v, want X 25", c.DesiredAcceleration())
	}
}

func TestIntentResetsEachTick(t *testing.T) {
	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())

	c.SetMovementIntent(mgl64.Vec3{1, 0, 0})
	c.PhysicsTick(0.02)
	afterFirst := c.TargetVelocity().X()

	// No fresh intent: the goal falls back to zero and the target
	// velocity shrinks.
	c.PhysicsTick(0.02)
	if c.TargetVelocity().X() >= afterFirst {
		t.Errorf("target velocity should decay without intent: %v -> %v",
			afterFirst, c.TargetVelocity().X())
	}
}

func TestResponseCurveShapesAcceleration(t *testing.T) {
	cfg := testConfig()
	// Reversal (dot -1) accelerates twice as hard as cruise (dot 1).
	cfg.ResponseCurve = vmath.NewCurve(
		vmath.Key{T: -1, V: 2},
		vmath.Key{T: 1, V: 1},
	)
	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	c := NewController(body, floorWorld(), nil, groundedReading(), cfg)

	// Build up target velocity along +x.
	for i := 0; i < 10; i++ {
		c.SetMovementIntent(mgl64.Vec3{1, 0, 0})
		c.PhysicsTick(0.02)
	}
	before := c.TargetVelocity().X()

	// Reverse: dot = -1, factor 2, step = 25*2*0.02 = 1.0.
	c.SetMovementIntent(mgl64.Vec3{-1, 0, 0})
	c.PhysicsTick(0.02)
	step := before - c.TargetVelocity().X()
	if math.Abs(step-1.0) > 1e-9 {
		t.Errorf("reversal step = %v, want 1.0", step)
	}
}

func TestUprightTorqueRightsTiltedBody(t *testing.T) {
	body := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	// Tilted 45 degrees around z.
	body.rot = mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})

	c := NewController(body, floorWorld(), nil, groundedReading(), testConfig())
	c.PhysicsTick(0.02)

	if len(body.torques) != 1 {
		t.Fatalf("expected 1 torque, got %d", len(body.torques))
	}
	// Righting a +z tilt needs torque around -z.
	if body.torques[0].Z() >= 0 {
		t.Errorf("torque = %v, want negative Z component", body.torques[0])
	}

	// An already upright, still body gets no torque.
	upright := newRecordingBody(mgl64.Vec3{0, 0.8, 0}, 1)
	c2 := NewController(upright, floorWorld(), nil, groundedReading(), testConfig())
	c2.PhysicsTick(0.02)
	if len(upright.torques) == 1 && upright.torques[0].Len() > 1e-9 {
		t.Errorf("upright body torque = %v, want ~0", upright.torques[0])
	}
}
