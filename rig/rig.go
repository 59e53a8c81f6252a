// Package rig assembles one creature: the surface classifier, the
// locomotion controller and one leg stepper per limb, all resolved at
// construction and advanced in a fixed order each simulation tick.
// The rig is the single place external code feeds movement intent.
package rig

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hexfeld/skitter/config"
	"github.com/hexfeld/skitter/gait"
	"github.com/hexfeld/skitter/locomotion"
	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/surface"
	"github.com/hexfeld/skitter/vmath"
)

// Options carries the optional wiring for New.
type Options struct {
	Logger *zap.Logger

	// Shape overrides probe-volume auto-detection when set.
	Shape physics.Shape

	// BodyCollider plus Shapes auto-detects the probe volume from the
	// body's registered collider. An unresolvable shape degrades the
	// ground probe to "always airborne" rather than failing.
	BodyCollider uuid.UUID
	Shapes       physics.ShapeLookup

	// Velocities lets the float spring ride moving ground.
	Velocities physics.VelocityLookup
}

// Rig owns the per-creature subsystems and their tick order.
type Rig struct {
	body        physics.RigidBody
	classifier  *surface.Classifier
	controller  *locomotion.Controller
	coordinator *gait.Coordinator
	log         *zap.Logger
}

// New resolves every sub-component up front. A missing body or query
// provider is a setup error; nothing here is recovered from at
// runtime.
func New(body physics.RigidBody, queries physics.QueryProvider, cfg config.Config, opts Options) (*Rig, error) {
	if body == nil {
		return nil, fmt.Errorf("rig: nil rigid body")
	}
	if queries == nil {
		return nil, fmt.Errorf("rig: nil query provider")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	shape := resolveShape(opts, logger)

	r := &Rig{body: body, log: logger}

	r.classifier = surface.NewClassifier(queries, body, shape, surface.Config{
		GroundedThreshold:        cfg.Surface.GroundedThreshold,
		GroundNormalRayFactor:    cfg.Surface.GroundNormalRayFactor,
		SurfaceDetectionDistance: cfg.Surface.SurfaceDetectionDistance,
		SurfaceDotThreshold:      cfg.Surface.SurfaceDotThreshold,
		ContactExpiry:            cfg.Surface.ContactExpiry,
		GroundMask:               physics.LayerMask(cfg.Surface.GroundMask),
		SurfaceMask:              physics.LayerMask(cfg.Surface.SurfaceMask),
	})

	curveKeys := make([]vmath.Key, 0, len(cfg.Locomotion.ResponseCurve))
	for _, k := range cfg.Locomotion.ResponseCurve {
		curveKeys = append(curveKeys, vmath.Key{T: k.T, V: k.V})
	}

	// The controller reads the rig, not the classifier, so planted
	// feet can refine the normal it aligns against.
	r.controller = locomotion.NewController(body, queries, opts.Velocities, r, locomotion.Config{
		Gravity:           cfg.Locomotion.Gravity,
		RideHeight:        cfg.Locomotion.RideHeight,
		FloatRayLength:    cfg.Locomotion.FloatRayLength,
		FloatSpring:       cfg.Locomotion.FloatSpring,
		FloatDamper:       cfg.Locomotion.FloatDamper,
		JumpFloatCooldown: cfg.Locomotion.JumpFloatCooldown,
		FloatMask:         physics.LayerMask(cfg.Surface.GroundMask | cfg.Surface.SurfaceMask),
		UprightSpring:     cfg.Locomotion.UprightSpring,
		UprightDamper:     cfg.Locomotion.UprightDamper,
		MaxSpeed:          cfg.Locomotion.MaxSpeed,
		BaseAccel:         cfg.Locomotion.BaseAccel,
		MaxAccelForce:     cfg.Locomotion.MaxAccelForce,
		MinMoveSpeed:      cfg.Locomotion.MinMoveSpeed,
		ResponseCurve:     vmath.NewCurve(curveKeys...),
		JumpForce:         cfg.Locomotion.JumpForce,
	})

	stepCfg := gait.Config{
		TriggerDistance:   cfg.Gait.TriggerDistance,
		TriggerAngle:      cfg.Gait.TriggerAngle,
		OvershootFraction: cfg.Gait.OvershootFraction,
		FootholdLift:      cfg.Gait.FootholdLift,
		FootholdRayLength: cfg.Gait.FootholdRayLength,
		Duration:          cfg.Gait.StepDuration,
		HeightOffset:      cfg.Gait.StepHeightOffset,
		ArcFactor:         cfg.Gait.StepArcFactor,
		GroundMask:        physics.LayerMask(cfg.Surface.GroundMask),
	}

	limbs := make([]*gait.Limb, 0, len(cfg.Limbs))
	for i, lc := range cfg.Limbs {
		offset := vmath.Pose{
			Pos: mgl64.Vec3{lc.Offset[0], lc.Offset[1], lc.Offset[2]},
			Rot: mgl64.QuatIdent(),
		}
		foot := vmath.Pose{
			Pos: body.Position().Add(body.Orientation().Rotate(offset.Pos)),
			Rot: body.Orientation(),
		}
		// Seed the first diagonal pair ready so alternation starts
		// without waiting a full drift cycle.
		ready := i < 2
		limbs = append(limbs, &gait.Limb{
			Name:    lc.Name,
			Offset:  offset,
			Stepper: gait.NewStepper(queries, body.ID(), foot, ready, stepCfg),
		})
	}
	r.coordinator = gait.NewCoordinator(body, limbs, cfg.Gait.GroundLikeDot, logger)

	return r, nil
}

// resolveShape picks the probe volume: explicit override first, then
// collider lookup, else none (fail-open airborne).
func resolveShape(opts Options, logger *zap.Logger) physics.Shape {
	if opts.Shape.Kind != physics.ShapeNone {
		return opts.Shape
	}
	if opts.Shapes != nil && opts.BodyCollider != uuid.Nil {
		if s, ok := opts.Shapes.ColliderShape(opts.BodyCollider); ok && s.Kind != physics.ShapeNone {
			return s
		}
	}
	logger.Warn("rig: body collider shape not resolved, ground probe disabled")
	return physics.Shape{Kind: physics.ShapeNone}
}

// SetMovementIntent feeds the player's direction to this tick's
// classifier probe and locomotion drive.
func (r *Rig) SetMovementIntent(dir mgl64.Vec3) {
	r.classifier.SetMoveDirection(dir)
	r.controller.SetMovementIntent(dir)
}

// Jump triggers the controller's jump impulse.
func (r *Rig) Jump() {
	r.controller.Jump()
}

// Tick runs one fixed simulation step in the deterministic order:
// classifier first, then the force controller, then every limb.
func (r *Rig) Tick(dt float64) {
	r.classifier.Tick(dt)
	r.controller.PhysicsTick(dt)
	r.coordinator.Tick(dt)
}

// Reading implements the controller's snapshot source. While merely
// grounded, planted feet whose normals pass the ground-like test
// replace the defaulted surface normal, so the body leans with the
// terrain its legs are actually standing on.
func (r *Rig) Reading() surface.Reading {
	rd := r.classifier.Reading()
	if rd.State == surface.StateGrounded {
		if n, ok := r.coordinator.SupportNormal(rd.SurfaceNormal); ok {
			rd.SurfaceNormal = n
		}
	}
	return rd
}

// State returns the classification from the most recent tick.
func (r *Rig) State() surface.State { return r.classifier.Reading().State }

// Body returns the driven rigid body.
func (r *Rig) Body() physics.RigidBody { return r.body }

// Controller exposes the locomotion controller, mainly for
// diagnostics.
func (r *Rig) Controller() *locomotion.Controller { return r.controller }

// Coordinator exposes the gait coordinator and its limbs.
func (r *Rig) Coordinator() *gait.Coordinator { return r.coordinator }
