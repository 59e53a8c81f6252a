// Package gait animates procedural leg stepping: each limb runs an
// independent three-state machine that notices when its foot has
// drifted too far from its home anchor, finds a real foothold with a
// ray query, and swings the foot there along a Bezier arc. A
// coordinator multiplexes all limbs inside one simulation tick;
// diagonal alternation emerges from symmetric anchor offsets, not
// from the traversal order.
package gait

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/vmath"
)

// StepState is the per-limb machine state.
type StepState uint8

const (
	StepInactive StepState = iota // foot planted, not scheduled
	StepReady                     // allowed to step once thresholds trip
	StepMoving                    // committed to an arc, runs to completion
)

func (s StepState) String() string {
	switch s {
	case StepReady:
		return "ready"
	case StepMoving:
		return "moving"
	}
	return "inactive"
}

// Config carries one limb's stepping tuning.
type Config struct {
	TriggerDistance   float64
	TriggerAngle      float64 // radians
	OvershootFraction float64
	FootholdLift      float64
	FootholdRayLength float64
	Duration          float64
	HeightOffset      float64
	ArcFactor         float64
	GroundMask        physics.LayerMask
}

// Stepper is one limb's state machine. The home anchor is supplied by
// the caller each tick and is read-only here.
type Stepper struct {
	queries  physics.QueryProvider
	selfBody uuid.UUID
	cfg      Config

	state   StepState
	foot    vmath.Pose
	start   vmath.Pose
	end     vmath.Pose
	control mgl64.Vec3
	elapsed float64

	contactNormal mgl64.Vec3
	hasContact    bool
}

// NewStepper creates a limb with its foot planted at initialFoot.
// ready starts the machine in StepReady instead of StepInactive.
func NewStepper(queries physics.QueryProvider, selfBody uuid.UUID, initialFoot vmath.Pose, ready bool, cfg Config) *Stepper {
	s := &Stepper{
		queries:  queries,
		selfBody: selfBody,
		cfg:      cfg,
		foot:     initialFoot,
	}
	if ready {
		s.state = StepReady
	}
	return s
}

// State returns the current machine state.
func (s *Stepper) State() StepState { return s.state }

// FootPose returns the limb's current world-space foot placement.
// Continuous across ticks; a step never teleports the foot.
func (s *Stepper) FootPose() vmath.Pose { return s.foot }

// ContactNormal returns the normal of the last confirmed foothold,
// valid only while the foot is planted on it.
func (s *Stepper) ContactNormal() (mgl64.Vec3, bool) {
	if s.state == StepMoving || !s.hasContact {
		return mgl64.Vec3{}, false
	}
	return s.contactNormal, true
}

// TryMove promotes an inactive limb to ready. It is a no-op while the
// limb is already ready or mid-step, so a committed arc always runs
// to completion.
func (s *Stepper) TryMove() {
	if s.state == StepInactive {
		s.state = StepReady
	}
}

// Tick advances the machine exactly once per simulation step. anchor
// is the limb's current home pose in world space.
func (s *Stepper) Tick(dt float64, anchor vmath.Pose) {
	switch s.state {
	case StepReady:
		s.tickReady(anchor)
	case StepMoving:
		s.tickMoving(dt)
	}
}

// tickReady checks drift against the trigger thresholds and, when a
// foothold exists, captures the arc and commits to it. No foothold
// means the limb simply stays ready.
func (s *Stepper) tickReady(anchor vmath.Pose) {
	dist := s.foot.Pos.Sub(anchor.Pos).Len()
	angle := vmath.AngleBetween(s.foot.Rot, anchor.Rot)
	if dist <= s.cfg.TriggerDistance && angle <= s.cfg.TriggerAngle {
		return
	}

	hit, ok := s.findFoothold(anchor)
	if !ok {
		return
	}

	up := anchor.Up()
	s.start = s.foot
	s.end = vmath.Pose{
		Pos: hit.Point.Add(up.Mul(s.cfg.HeightOffset)),
		Rot: vmath.LookRotation(vmath.ProjectOnPlane(anchor.Forward(), hit.Normal), hit.Normal),
	}

	// Control point above the midpoint, lifted with the step length so
	// longer steps arc higher.
	mid := vmath.Lerp(s.start.Pos, s.end.Pos, 0.5)
	span := s.end.Pos.Sub(s.start.Pos).Len()
	s.control = mid.Add(up.Mul(span * s.cfg.ArcFactor))

	s.contactNormal = vmath.SafeNormalize(hit.Normal)
	s.hasContact = true
	s.elapsed = 0
	s.state = StepMoving
}

// tickMoving advances the arc; position follows the eased quadratic
// Bezier and orientation slerps between the captured poses. Both
// interpolations clamp, so finishing lands exactly on the end pose.
func (s *Stepper) tickMoving(dt float64) {
	s.elapsed += dt
	t := vmath.EaseInOutCubic(s.elapsed / s.cfg.Duration)

	s.foot.Pos = vmath.QuadraticBezier(s.start.Pos, s.control, s.end.Pos, t)
	s.foot.Rot = vmath.Slerp(s.start.Rot, s.end.Rot, t)

	if s.elapsed >= s.cfg.Duration {
		s.foot = s.end
		s.state = StepInactive
	}
}

// findFoothold searches near the home anchor: aim back toward home,
// overshoot by a fraction of the trigger distance, lift, and ray-cast
// down onto the ground layers. Hits on the owning body are skipped.
func (s *Stepper) findFoothold(anchor vmath.Pose) (physics.RaycastHit, bool) {
	toHome := anchor.Pos.Sub(s.foot.Pos)
	over := vmath.ClampMagnitude(toHome, s.cfg.OvershootFraction*s.cfg.TriggerDistance)

	up := anchor.Up()
	origin := anchor.Pos.Add(over).Add(up.Mul(s.cfg.FootholdLift))

	for _, hit := range s.queries.RaycastAll(origin, up.Mul(-1), s.cfg.FootholdRayLength, s.cfg.GroundMask) {
		if hit.Body == s.selfBody {
			continue
		}
		return hit, true
	}
	return physics.RaycastHit{}, false
}
