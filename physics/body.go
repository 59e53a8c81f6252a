package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/hexfeld/skitter/vmath"
)

// DynamicBody is a minimal force-integrating rigid body with unit
// rotational inertia. It backs the sandbox and tests; a production
// embedding would adapt the host engine's body instead.
type DynamicBody struct {
	id   uuid.UUID
	pos  mgl64.Vec3
	rot  mgl64.Quat
	vel  mgl64.Vec3
	avel mgl64.Vec3
	mass float64

	force  mgl64.Vec3
	torque mgl64.Vec3
}

// NewDynamicBody creates a body at pos with the given mass. Mass is
// clamped to a small positive floor to keep integration finite.
func NewDynamicBody(pos mgl64.Vec3, mass float64) *DynamicBody {
	if mass < 1e-6 {
		mass = 1e-6
	}
	return &DynamicBody{
		id:   uuid.New(),
		pos:  pos,
		rot:  mgl64.QuatIdent(),
		mass: mass,
	}
}

func (b *DynamicBody) ID() uuid.UUID                { return b.id }
func (b *DynamicBody) Position() mgl64.Vec3         { return b.pos }
func (b *DynamicBody) Orientation() mgl64.Quat      { return b.rot }
func (b *DynamicBody) Velocity() mgl64.Vec3         { return b.vel }
func (b *DynamicBody) AngularVelocity() mgl64.Vec3  { return b.avel }
func (b *DynamicBody) Mass() float64                { return b.mass }
func (b *DynamicBody) SetPosition(p mgl64.Vec3)     { b.pos = p }
func (b *DynamicBody) SetOrientation(q mgl64.Quat)  { b.rot = q.Normalize() }
func (b *DynamicBody) SetVelocity(v mgl64.Vec3)     { b.vel = v }
func (b *DynamicBody) SetAngularVelocity(v mgl64.Vec3) { b.avel = v }

// AddForce implements RigidBody. Impulses change velocity at once;
// the other modes accumulate until the next Step.
func (b *DynamicBody) AddForce(v mgl64.Vec3, mode ForceMode) {
	switch mode {
	case ForceModeImpulse:
		b.vel = b.vel.Add(v.Mul(1 / b.mass))
	case ForceModeAcceleration:
		b.force = b.force.Add(v.Mul(b.mass))
	default:
		b.force = b.force.Add(v)
	}
}

// AddTorque accumulates torque until the next Step.
func (b *DynamicBody) AddTorque(v mgl64.Vec3) {
	b.torque = b.torque.Add(v)
}

// Step integrates accumulated forces over dt (semi-implicit Euler)
// and clears the accumulators.
func (b *DynamicBody) Step(dt float64) {
	if dt <= 0 {
		b.force = mgl64.Vec3{}
		b.torque = mgl64.Vec3{}
		return
	}
	b.vel = b.vel.Add(b.force.Mul(dt / b.mass))
	b.pos = b.pos.Add(b.vel.Mul(dt))

	b.avel = b.avel.Add(b.torque.Mul(dt)) // unit inertia tensor
	if !vmath.IsZero(b.avel) {
		// q' = q + (dt/2) * omega ⊗ q
		wq := mgl64.Quat{W: 0, V: b.avel}
		dq := wq.Mul(b.rot)
		b.rot = mgl64.Quat{
			W: b.rot.W + 0.5*dt*dq.W,
			V: b.rot.V.Add(dq.V.Mul(0.5 * dt)),
		}.Normalize()
	}

	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}
