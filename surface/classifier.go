// Package surface turns geometric queries into a per-tick surface
// classification: is the body over ordinary ground, clinging to a
// steep surface, both, or airborne. The classifier is the single
// writer of the surface reading; the locomotion controller and leg
// steppers read the same snapshot for the rest of the tick.
package surface

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/vmath"
)

// State is the 4-way classification derived from the two detectors.
type State uint8

const (
	StateAir      State = iota // neither detector fired
	StateGrounded              // ground probe only
	StateSurface               // surface probe only
	StateMultiple              // both in the same tick
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateSurface:
		return "surface"
	case StateMultiple:
		return "multiple"
	}
	return "air"
}

// Reading is the classifier's per-tick snapshot. GroundNormal is the
// zero vector when no ground contact exists; SurfaceNormal is always
// unit length, falling back to world up once the contact cache
// expires.
type Reading struct {
	State           State
	GroundNormal    mgl64.Vec3
	SurfaceNormal   mgl64.Vec3
	SurfaceDistance float64
	LastSurface     physics.ColliderRef
	LastContactTime float64 // sim seconds of the last surface hit
}

// Config carries the classifier's tuning values and layer masks.
type Config struct {
	GroundedThreshold        float64
	GroundNormalRayFactor    float64
	SurfaceDetectionDistance float64
	SurfaceDotThreshold      float64
	ContactExpiry            float64
	GroundMask               physics.LayerMask
	SurfaceMask              physics.LayerMask
}

// Classifier owns the surface reading. One instance per body.
type Classifier struct {
	queries physics.QueryProvider
	body    physics.RigidBody
	shape   physics.Shape
	cfg     Config

	now         float64
	moveDir     mgl64.Vec3
	lastNormal  mgl64.Vec3
	lastDist    float64
	lastRef     physics.ColliderRef
	lastContact float64
	hadContact  bool
	reading     Reading
}

// NewClassifier wires the classifier to its query provider and body.
// shape is the probe volume, normally auto-detected from the body's
// collider; ShapeNone degrades the ground probe to "no contact".
func NewClassifier(queries physics.QueryProvider, body physics.RigidBody, shape physics.Shape, cfg Config) *Classifier {
	return &Classifier{
		queries:    queries,
		body:       body,
		shape:      shape,
		cfg:        cfg,
		lastNormal: vmath.AxisUp,
	}
}

// SetMoveDirection feeds the desired movement direction used as the
// highest-priority surface probe ray. Zero means no intent.
func (c *Classifier) SetMoveDirection(d mgl64.Vec3) {
	c.moveDir = vmath.SafeNormalize(d)
}

// Reading returns the snapshot produced by the most recent Tick.
func (c *Classifier) Reading() Reading {
	return c.reading
}

// Tick advances sim time by dt, reruns both probes and recombines the
// 4-state classification. Absence of any hit is a normal outcome;
// every branch resolves to a defined default.
func (c *Classifier) Tick(dt float64) State {
	c.now += dt

	grounded, groundNormal := c.probeGround()
	surfaceNormal, dist, ref := c.probeSurface()

	onSurface := surfaceNormal.Dot(vmath.AxisUp) < c.cfg.SurfaceDotThreshold

	var state State
	switch {
	case grounded && onSurface:
		state = StateMultiple
	case grounded:
		state = StateGrounded
	case onSurface:
		state = StateSurface
	default:
		state = StateAir
	}

	c.reading = Reading{
		State:           state,
		GroundNormal:    groundNormal,
		SurfaceNormal:   surfaceNormal,
		SurfaceDistance: dist,
		LastSurface:     ref,
		LastContactTime: c.lastContact,
	}
	return state
}

// probeGround casts the body's shape downward by the grounded
// threshold and, on contact, recomputes the ground normal with a
// short downward ray. Hits on the body's own colliders do not count.
func (c *Classifier) probeGround() (bool, mgl64.Vec3) {
	if c.shape.Kind == physics.ShapeNone {
		return false, mgl64.Vec3{}
	}

	down := vmath.AxisUp.Mul(-1)
	pose := physics.Pose{
		Pos: c.body.Position().Add(down.Mul(c.cfg.GroundedThreshold)),
		Rot: c.body.Orientation(),
	}
	contact := false
	for _, ref := range c.queries.OverlapShape(c.shape, pose, c.cfg.GroundMask) {
		if ref.Body != c.body.ID() {
			contact = true
			break
		}
	}
	if !contact {
		return false, mgl64.Vec3{}
	}

	rayLen := c.cfg.GroundNormalRayFactor * c.shape.Extent()
	for _, hit := range c.queries.RaycastAll(c.body.Position(), down, rayLen, c.cfg.GroundMask) {
		if hit.Body != c.body.ID() {
			return true, vmath.SafeNormalize(hit.Normal)
		}
	}
	return true, vmath.AxisUp
}

// probeSurface fires up to three prioritized rays; the first non-self
// hit becomes the new reading and refreshes the contact timestamp.
// With no hit the cached normal survives until the expiry window
// elapses, then the reading resets to world up.
func (c *Classifier) probeSurface() (mgl64.Vec3, float64, physics.ColliderRef) {
	dirs := make([]mgl64.Vec3, 0, 3)
	if !vmath.IsZero(c.moveDir) {
		dirs = append(dirs, c.moveDir)
	}
	dirs = append(dirs, vmath.Up(c.body.Orientation()).Mul(-1))
	if !vmath.IsZero(c.lastNormal) {
		dirs = append(dirs, c.lastNormal.Mul(-1))
	}

	origin := c.body.Position()
	for _, dir := range dirs {
		for _, hit := range c.queries.RaycastAll(origin, dir, c.cfg.SurfaceDetectionDistance, c.cfg.SurfaceMask) {
			if hit.Body == c.body.ID() {
				continue
			}
			c.lastNormal = vmath.SafeNormalize(hit.Normal)
			c.lastDist = hit.Distance
			c.lastRef = physics.ColliderRef{Collider: hit.Collider, Body: hit.Body}
			c.lastContact = c.now
			c.hadContact = true
			return c.lastNormal, c.lastDist, c.lastRef
		}
	}

	if c.hadContact && c.now-c.lastContact < c.cfg.ContactExpiry {
		return c.lastNormal, c.lastDist, c.lastRef
	}

	// Cache expired: the default is ordinary up, which also reports
	// "not on a surface" through the dot-product test.
	c.lastNormal = vmath.AxisUp
	c.lastDist = 0
	c.lastRef = physics.ColliderRef{}
	c.hadContact = false
	return c.lastNormal, c.lastDist, c.lastRef
}
