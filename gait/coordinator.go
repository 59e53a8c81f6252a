package gait

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/vmath"
)

// Limb pairs a stepper with its body-local anchor offset and a name
// used in logs (e.g. "front-left").
type Limb struct {
	Name    string
	Offset  vmath.Pose // home anchor in body-local space
	Stepper *Stepper
}

// Coordinator invokes every limb once per tick in a fixed traversal
// order. It never schedules pairs explicitly: with symmetric anchor
// offsets, diagonal limbs trip their drift thresholds in alternating
// groups on their own.
type Coordinator struct {
	body  physics.RigidBody
	limbs []*Limb

	// GroundLikeDot separates ground-like from wall-like contact
	// normals when averaging planted feet into a support normal.
	groundLikeDot float64

	log *zap.Logger
}

// NewCoordinator builds the coordinator over limbs in traversal
// order. logger may be nil.
func NewCoordinator(body physics.RigidBody, limbs []*Limb, groundLikeDot float64, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		body:          body,
		limbs:         limbs,
		groundLikeDot: groundLikeDot,
		log:           logger,
	}
}

// Limbs returns the limbs in traversal order.
func (g *Coordinator) Limbs() []*Limb { return g.limbs }

// Tick advances every limb once: promote, then run its state machine
// against the current world-space anchor.
func (g *Coordinator) Tick(dt float64) {
	pos := g.body.Position()
	rot := g.body.Orientation()

	for _, l := range g.limbs {
		anchor := vmath.Pose{
			Pos: pos.Add(rot.Rotate(l.Offset.Pos)),
			Rot: rot.Mul(l.Offset.Rot),
		}

		before := l.Stepper.State()
		l.Stepper.TryMove()
		l.Stepper.Tick(dt, anchor)
		after := l.Stepper.State()

		if before != after {
			g.log.Debug("limb state change",
				zap.String("limb", l.Name),
				zap.String("from", before.String()),
				zap.String("to", after.String()),
			)
		}
	}
}

// SupportNormal averages the contact normals of planted feet whose
// normal is ground-like relative to refUp (dot at or above the
// configured threshold). Reports false when no planted foot
// qualifies.
func (g *Coordinator) SupportNormal(refUp mgl64.Vec3) (mgl64.Vec3, bool) {
	var sum mgl64.Vec3
	count := 0
	for _, l := range g.limbs {
		n, ok := l.Stepper.ContactNormal()
		if !ok {
			continue
		}
		if n.Dot(refUp) < g.groundLikeDot {
			continue
		}
		sum = sum.Add(n)
		count++
	}
	if count == 0 {
		return mgl64.Vec3{}, false
	}
	return vmath.SafeNormalize(sum), true
}
