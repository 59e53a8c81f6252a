// Package physics defines the narrow boundary between the locomotion
// core and whatever rigid-body engine hosts it: shape/ray queries, a
// readable-writable rigid body, and the handle types those exchange.
// It also ships StaticWorld, an analytic implementation of the query
// side used by tests and the sandbox.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// LayerMask selects which collision layers a query may hit.
type LayerMask uint32

// Overlaps reports whether the two masks share any layer.
func (m LayerMask) Overlaps(other LayerMask) bool {
	return m&other != 0
}

// ShapeKind enumerates the supported collider primitives.
type ShapeKind uint8

const (
	// ShapeNone marks an absent or unrecognized collider. Probes built
	// on it report no contact, degrading detection to "airborne".
	ShapeNone ShapeKind = iota
	ShapeSphere
	ShapeBox
	ShapeCapsule
)

// Shape approximates a body's collision volume.
type Shape struct {
	Kind ShapeKind

	Radius      float64    // sphere, capsule
	HalfHeight  float64    // capsule: half the segment between cap centers
	HalfExtents mgl64.Vec3 // box
}

// Extent returns the shape's maximum reach from its center, used to
// size short probe rays. Zero for ShapeNone.
func (s Shape) Extent() float64 {
	switch s.Kind {
	case ShapeSphere:
		return s.Radius
	case ShapeCapsule:
		return s.HalfHeight + s.Radius
	case ShapeBox:
		return s.HalfExtents.Len()
	}
	return 0
}

// ColliderRef identifies a collider and the body that owns it.
// A Nil body marks static geometry.
type ColliderRef struct {
	Collider uuid.UUID
	Body     uuid.UUID
}

// RaycastHit is one intersection returned by RaycastAll.
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider uuid.UUID
	Body     uuid.UUID
}

// QueryProvider is the geometric sensing surface the classifier and
// leg steppers depend on. Implementations must return hits sorted by
// ascending distance and must not retain the returned slices.
type QueryProvider interface {
	// OverlapShape returns every collider intersecting shape placed at
	// pose, restricted to the given layers.
	OverlapShape(shape Shape, pose Pose, mask LayerMask) []ColliderRef

	// RaycastAll returns every hit along the ray, nearest first. dir
	// need not be normalized; distances are measured in world units.
	RaycastAll(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) []RaycastHit
}

// ShapeLookup optionally exposes collider shapes, letting the rig
// auto-detect the probe volume from the body's actual collider.
type ShapeLookup interface {
	ColliderShape(id uuid.UUID) (Shape, bool)
}

// VelocityLookup optionally exposes the velocity of whatever owns a
// collider, so the float spring can ride moving ground. Absence means
// zero velocity.
type VelocityLookup interface {
	ColliderVelocity(id uuid.UUID) (mgl64.Vec3, bool)
}

// Pose places a shape in the world.
type Pose struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// ForceMode selects how AddForce interprets its vector.
type ForceMode uint8

const (
	ForceModeForce        ForceMode = iota // continuous, mass-dependent
	ForceModeImpulse                       // instantaneous momentum change
	ForceModeAcceleration                  // continuous, mass-independent
)

// RigidBody is the body the locomotion controller senses and drives.
type RigidBody interface {
	ID() uuid.UUID
	Position() mgl64.Vec3
	Orientation() mgl64.Quat
	Velocity() mgl64.Vec3
	AngularVelocity() mgl64.Vec3
	Mass() float64

	AddForce(v mgl64.Vec3, mode ForceMode)
	AddTorque(v mgl64.Vec3)
}
