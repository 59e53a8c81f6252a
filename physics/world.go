package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/hexfeld/skitter/vmath"
)

type colliderKind uint8

const (
	colliderPlane colliderKind = iota
	colliderBox
	colliderSphere
)

type worldCollider struct {
	id    uuid.UUID
	body  uuid.UUID
	layer LayerMask
	kind  colliderKind

	// plane: one-sided, infinite
	point  mgl64.Vec3
	normal mgl64.Vec3

	// box: axis-aligned
	min, max mgl64.Vec3

	// sphere
	center mgl64.Vec3
	radius float64

	velocity mgl64.Vec3
}

// StaticWorld is an analytic QueryProvider over planes, axis-aligned
// boxes and spheres. It exists so the classifier, steppers and
// controller can run deterministically without a live physics engine.
type StaticWorld struct {
	colliders []worldCollider
}

// NewStaticWorld returns an empty world.
func NewStaticWorld() *StaticWorld {
	return &StaticWorld{}
}

// AddPlane adds an infinite one-sided plane through point with the
// given outward normal and returns its collider handle.
func (w *StaticWorld) AddPlane(point, normal mgl64.Vec3, layer LayerMask) uuid.UUID {
	c := worldCollider{
		id:     uuid.New(),
		layer:  layer,
		kind:   colliderPlane,
		point:  point,
		normal: vmath.SafeNormalize(normal),
	}
	w.colliders = append(w.colliders, c)
	return c.id
}

// AddBox adds an axis-aligned box spanning min..max.
func (w *StaticWorld) AddBox(min, max mgl64.Vec3, layer LayerMask) uuid.UUID {
	c := worldCollider{
		id:    uuid.New(),
		layer: layer,
		kind:  colliderBox,
		min:   min,
		max:   max,
	}
	w.colliders = append(w.colliders, c)
	return c.id
}

// AddSphere adds a sphere collider owned by the given body. Pass
// uuid.Nil for static geometry; a real owner lets tests exercise
// self-exclusion.
func (w *StaticWorld) AddSphere(center mgl64.Vec3, radius float64, layer LayerMask, owner uuid.UUID) uuid.UUID {
	c := worldCollider{
		id:     uuid.New(),
		body:   owner,
		layer:  layer,
		kind:   colliderSphere,
		center: center,
		radius: radius,
	}
	w.colliders = append(w.colliders, c)
	return c.id
}

// SetColliderVelocity tags a collider's owner with a velocity, so the
// float spring sees moving ground.
func (w *StaticWorld) SetColliderVelocity(id uuid.UUID, v mgl64.Vec3) {
	for i := range w.colliders {
		if w.colliders[i].id == id {
			w.colliders[i].velocity = v
		}
	}
}

// MoveSphere repositions a sphere collider, tracking a moving body.
func (w *StaticWorld) MoveSphere(id uuid.UUID, center mgl64.Vec3) {
	for i := range w.colliders {
		if w.colliders[i].id == id && w.colliders[i].kind == colliderSphere {
			w.colliders[i].center = center
		}
	}
}

// OverlapShape implements QueryProvider. Box and capsule shapes are
// tested conservatively via their bounding sphere against box and
// sphere colliders; against planes all kinds use their exact support
// radius along the plane normal.
func (w *StaticWorld) OverlapShape(shape Shape, pose Pose, mask LayerMask) []ColliderRef {
	if shape.Kind == ShapeNone {
		return nil
	}
	var out []ColliderRef
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.layer.Overlaps(mask) {
			continue
		}
		if overlapsCollider(shape, pose, c) {
			out = append(out, ColliderRef{Collider: c.id, Body: c.body})
		}
	}
	return out
}

func overlapsCollider(shape Shape, pose Pose, c *worldCollider) bool {
	switch c.kind {
	case colliderPlane:
		d := pose.Pos.Sub(c.point).Dot(c.normal)
		r := supportRadius(shape, pose.Rot, c.normal)
		return d >= -r && d <= r
	case colliderBox:
		closest := clampVec(pose.Pos, c.min, c.max)
		r := shape.Extent()
		return closest.Sub(pose.Pos).LenSqr() <= r*r
	case colliderSphere:
		r := shape.Extent() + c.radius
		return c.center.Sub(pose.Pos).LenSqr() <= r*r
	}
	return false
}

// supportRadius is the shape's exact reach from its center along n.
func supportRadius(shape Shape, rot mgl64.Quat, n mgl64.Vec3) float64 {
	switch shape.Kind {
	case ShapeSphere:
		return shape.Radius
	case ShapeCapsule:
		axis := rot.Rotate(vmath.AxisUp)
		return shape.Radius + shape.HalfHeight*math.Abs(axis.Dot(n))
	case ShapeBox:
		rx := rot.Rotate(vmath.AxisRight)
		ry := rot.Rotate(vmath.AxisUp)
		rz := rot.Rotate(vmath.AxisForward)
		return shape.HalfExtents.X()*math.Abs(rx.Dot(n)) +
			shape.HalfExtents.Y()*math.Abs(ry.Dot(n)) +
			shape.HalfExtents.Z()*math.Abs(rz.Dot(n))
	}
	return 0
}

// RaycastAll implements QueryProvider, returning hits nearest first.
func (w *StaticWorld) RaycastAll(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) []RaycastHit {
	d := vmath.SafeNormalize(dir)
	if vmath.IsZero(d) || maxDist <= 0 {
		return nil
	}
	var out []RaycastHit
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.layer.Overlaps(mask) {
			continue
		}
		if hit, ok := raycastCollider(origin, d, maxDist, c); ok {
			out = append(out, hit)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

func raycastCollider(origin, dir mgl64.Vec3, maxDist float64, c *worldCollider) (RaycastHit, bool) {
	switch c.kind {
	case colliderPlane:
		denom := dir.Dot(c.normal)
		if denom >= -vmath.Epsilon {
			return RaycastHit{}, false // parallel or leaving the front face
		}
		t := c.point.Sub(origin).Dot(c.normal) / denom
		if t < 0 || t > maxDist {
			return RaycastHit{}, false
		}
		return RaycastHit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   c.normal,
			Distance: t,
			Collider: c.id,
			Body:     c.body,
		}, true

	case colliderBox:
		t, n, ok := raycastAABB(origin, dir, c.min, c.max)
		if !ok || t > maxDist {
			return RaycastHit{}, false
		}
		return RaycastHit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   n,
			Distance: t,
			Collider: c.id,
			Body:     c.body,
		}, true

	case colliderSphere:
		oc := origin.Sub(c.center)
		b := oc.Dot(dir)
		cc := oc.LenSqr() - c.radius*c.radius
		disc := b*b - cc
		if disc < 0 {
			return RaycastHit{}, false
		}
		t := -b - math.Sqrt(disc)
		if t < 0 || t > maxDist {
			return RaycastHit{}, false
		}
		p := origin.Add(dir.Mul(t))
		return RaycastHit{
			Point:    p,
			Normal:   vmath.SafeNormalize(p.Sub(c.center)),
			Distance: t,
			Collider: c.id,
			Body:     c.body,
		}, true
	}
	return RaycastHit{}, false
}

// raycastAABB is the slab method; returns entry distance and face
// normal for rays starting outside the box.
func raycastAABB(origin, dir, min, max mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	var nmin mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := min[axis], max[axis]
		if math.Abs(d) < vmath.Epsilon {
			if o < lo || o > hi {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		var n mgl64.Vec3
		if t1 > t2 {
			t1, t2 = t2, t1
			n[axis] = 1
		} else {
			n[axis] = -1
		}
		if t1 > tmin {
			tmin = t1
			nmin = n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tmin < 0 {
		return 0, mgl64.Vec3{}, false
	}
	return tmin, nmin, true
}

func clampVec(v, lo, hi mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		vmath.Clamp(v.X(), lo.X(), hi.X()),
		vmath.Clamp(v.Y(), lo.Y(), hi.Y()),
		vmath.Clamp(v.Z(), lo.Z(), hi.Z()),
	}
}

// ColliderShape implements ShapeLookup for sphere colliders; other
// collider kinds report no shape.
func (w *StaticWorld) ColliderShape(id uuid.UUID) (Shape, bool) {
	for i := range w.colliders {
		c := &w.colliders[i]
		if c.id == id {
			if c.kind == colliderSphere {
				return Shape{Kind: ShapeSphere, Radius: c.radius}, true
			}
			return Shape{}, false
		}
	}
	return Shape{}, false
}

// ColliderVelocity implements VelocityLookup from velocity tags.
func (w *StaticWorld) ColliderVelocity(id uuid.UUID) (mgl64.Vec3, bool) {
	for i := range w.colliders {
		if w.colliders[i].id == id {
			return w.colliders[i].velocity, true
		}
	}
	return mgl64.Vec3{}, false
}
