// Package locomotion drives a hovering body across arbitrary terrain:
// a float spring holds ride height above whatever surface supports
// the body, an alignment spring keeps it upright relative to that
// surface, and a curve-shaped acceleration force chases the movement
// intent tangentially. All three consume the surface classifier's
// per-tick snapshot.
package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/surface"
	"github.com/hexfeld/skitter/vmath"
)

// ReadingSource supplies the classifier snapshot for the current tick.
type ReadingSource interface {
	Reading() surface.Reading
}

// Config carries the controller's tuning values.
type Config struct {
	Gravity float64

	RideHeight        float64
	FloatRayLength    float64
	FloatSpring       float64
	FloatDamper       float64
	JumpFloatCooldown float64
	FloatMask         physics.LayerMask

	UprightSpring float64
	UprightDamper float64

	MaxSpeed      float64
	BaseAccel     float64
	MaxAccelForce float64
	MinMoveSpeed  float64
	// ResponseCurve shapes acceleration by the dot product of intent
	// direction and current target-velocity direction, allowing e.g.
	// faster turnaround than pure speed-up. An empty curve is flat 1.
	ResponseCurve vmath.Curve

	JumpForce float64
}

// Controller applies forces and torques to one rigid body. Mutate it
// only from the simulation tick; it keeps no locks.
type Controller struct {
	body       physics.RigidBody
	queries    physics.QueryProvider
	velocities physics.VelocityLookup // optional, may be nil
	source     ReadingSource
	cfg        Config

	now      float64
	lastJump float64

	intent       mgl64.Vec3 // consumed and reset each tick
	facing       mgl64.Vec3 // last non-trivial intent direction
	targetVel    mgl64.Vec3
	desiredAccel mgl64.Vec3 // diagnostic only
}

// NewController wires the controller to its body, query provider and
// classifier snapshot source. velocities may be nil.
func NewController(body physics.RigidBody, queries physics.QueryProvider, velocities physics.VelocityLookup, source ReadingSource, cfg Config) *Controller {
	return &Controller{
		body:       body,
		queries:    queries,
		velocities: velocities,
		source:     source,
		cfg:        cfg,
		lastJump:   math.Inf(-1),
	}
}

// SetMovementIntent supplies the per-tick movement direction. The
// vector is normalized; zero means no intent.
func (c *Controller) SetMovementIntent(dir mgl64.Vec3) {
	c.intent = vmath.SafeNormalize(dir)
	if !vmath.IsZero(c.intent) {
		c.facing = c.intent
	}
}

// Jump applies an instantaneous impulse along the blend of the
// current surface normal and world up, and starts the float
// suppression cooldown so the spring does not re-snap the body.
func (c *Controller) Jump() {
	n := c.source.Reading().SurfaceNormal
	dir := vmath.SafeNormalize(n.Add(vmath.AxisUp))
	if vmath.IsZero(dir) {
		dir = vmath.AxisUp
	}
	c.body.AddForce(dir.Mul(c.cfg.JumpForce), physics.ForceModeImpulse)
	c.lastJump = c.now
}

// TargetVelocity returns the internal velocity goal being chased.
func (c *Controller) TargetVelocity() mgl64.Vec3 { return c.targetVel }

// DesiredAcceleration returns the last applied tangential
// acceleration. Diagnostic only.
func (c *Controller) DesiredAcceleration() mgl64.Vec3 { return c.desiredAccel }

// PhysicsTick runs one fixed step: gravity, float spring, upright
// torque, tangential drive. The consumed movement intent resets to
// zero afterwards.
func (c *Controller) PhysicsTick(dt float64) {
	if dt <= 0 {
		return
	}
	c.now += dt

	r := c.source.Reading()
	onSurface := r.State == surface.StateSurface || r.State == surface.StateMultiple

	c.applyGravity(r, onSurface)
	c.applyFloatSpring(r)
	c.applyUpright(r)
	c.applyDrive(r, dt)

	c.intent = mgl64.Vec3{}
}

// applyGravity pulls toward the supporting surface when clinging to
// one, and straight down otherwise.
func (c *Controller) applyGravity(r surface.Reading, onSurface bool) {
	g := c.cfg.Gravity * c.body.Mass()
	if onSurface && !vmath.IsZero(r.SurfaceNormal) {
		c.body.AddForce(r.SurfaceNormal.Mul(-g), physics.ForceModeForce)
		return
	}
	c.body.AddForce(vmath.AxisUp.Mul(-g), physics.ForceModeForce)
}

// applyFloatSpring holds the body at ride height along the surface
// normal. Suppressed during the post-jump cooldown window.
func (c *Controller) applyFloatSpring(r surface.Reading) {
	if c.now-c.lastJump < c.cfg.JumpFloatCooldown {
		return
	}
	rayDir := vmath.SafeNormalize(r.SurfaceNormal.Mul(-1))
	if vmath.IsZero(rayDir) {
		rayDir = vmath.AxisUp.Mul(-1)
	}

	for _, hit := range c.queries.RaycastAll(c.body.Position(), rayDir, c.cfg.FloatRayLength, c.cfg.FloatMask) {
		if hit.Body == c.body.ID() {
			continue
		}
		distErr := hit.Distance - c.cfg.RideHeight

		otherVel := mgl64.Vec3{}
		if c.velocities != nil {
			if v, ok := c.velocities.ColliderVelocity(hit.Collider); ok {
				otherVel = v
			}
		}
		relVel := c.body.Velocity().Sub(otherVel).Dot(rayDir)

		mag := distErr*c.cfg.FloatSpring - relVel*c.cfg.FloatDamper
		c.body.AddForce(rayDir.Mul(mag), physics.ForceModeForce)
		return
	}
}

// applyUpright spring-torques the body toward an orientation whose up
// is the surface normal and whose forward follows the last
// non-trivial intent.
func (c *Controller) applyUpright(r surface.Reading) {
	up := r.SurfaceNormal
	if vmath.IsZero(up) {
		up = vmath.Up(c.body.Orientation())
	}

	fwd := vmath.Forward(c.body.Orientation())
	if c.targetVel.Len() > c.cfg.MinMoveSpeed && !vmath.IsZero(c.facing) {
		fwd = c.facing
	}
	fwd = vmath.SafeNormalize(vmath.ProjectOnPlane(fwd, up))
	if vmath.IsZero(fwd) {
		fwd = vmath.Forward(c.body.Orientation())
	}

	target := vmath.LookRotation(fwd, up)
	axis, angle := vmath.DeltaAxisAngle(c.body.Orientation(), target)

	torque := axis.Mul(angle * c.cfg.UprightSpring).
		Sub(c.body.AngularVelocity().Mul(c.cfg.UprightDamper))
	c.body.AddTorque(torque)
}

// applyDrive chases intent with a curve-shaped acceleration, clamped
// and flattened onto the supporting surface's tangent plane.
func (c *Controller) applyDrive(r surface.Reading, dt float64) {
	goal := c.intent.Mul(c.cfg.MaxSpeed)

	dot := vmath.SafeNormalize(c.intent).Dot(vmath.SafeNormalize(c.targetVel))
	factor := c.cfg.ResponseCurve.Evaluate(dot)

	c.targetVel = vmath.MoveToward(c.targetVel, goal, c.cfg.BaseAccel*factor*dt)

	needed := c.targetVel.Sub(c.body.Velocity()).Mul(1 / dt)
	needed = vmath.ClampMagnitude(needed, c.cfg.MaxAccelForce*factor)
	needed = vmath.ProjectOnPlane(needed, r.SurfaceNormal)

	c.desiredAccel = needed
	c.body.AddForce(needed.Mul(c.body.Mass()), physics.ForceModeForce)
}
