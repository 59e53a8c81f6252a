// Package config defines the load-once tuning tree for the locomotion
// engine. Defaults mirror the constant package; Load overlays a YAML
// document on top of them.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hexfeld/skitter/constant"
)

// Surface tunes the surface classifier.
type Surface struct {
	GroundedThreshold        float64 `yaml:"grounded_threshold"`
	GroundNormalRayFactor    float64 `yaml:"ground_normal_ray_factor"`
	SurfaceDetectionDistance float64 `yaml:"surface_detection_distance"`
	SurfaceDotThreshold      float64 `yaml:"surface_dot_threshold"`
	ContactExpiry            float64 `yaml:"contact_expiry"`
	GroundMask               uint32  `yaml:"ground_mask"`
	SurfaceMask              uint32  `yaml:"surface_mask"`
}

// CurveKey is one sample of the acceleration response curve.
type CurveKey struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

// Locomotion tunes the locomotion controller.
type Locomotion struct {
	Gravity           float64    `yaml:"gravity"`
	RideHeight        float64    `yaml:"ride_height"`
	FloatRayLength    float64    `yaml:"float_ray_length"`
	FloatSpring       float64    `yaml:"float_spring"`
	FloatDamper       float64    `yaml:"float_damper"`
	JumpFloatCooldown float64    `yaml:"jump_float_cooldown"`
	UprightSpring     float64    `yaml:"upright_spring"`
	UprightDamper     float64    `yaml:"upright_damper"`
	MaxSpeed          float64    `yaml:"max_speed"`
	BaseAccel         float64    `yaml:"base_accel"`
	MaxAccelForce     float64    `yaml:"max_accel_force"`
	MinMoveSpeed      float64    `yaml:"min_move_speed"`
	JumpForce         float64    `yaml:"jump_force"`
	ResponseCurve     []CurveKey `yaml:"response_curve"`
}

// Gait tunes the leg steppers and coordinator.
type Gait struct {
	TriggerDistance   float64 `yaml:"trigger_distance"`
	TriggerAngle      float64 `yaml:"trigger_angle"`
	OvershootFraction float64 `yaml:"overshoot_fraction"`
	FootholdLift      float64 `yaml:"foothold_lift"`
	FootholdRayLength float64 `yaml:"foothold_ray_length"`
	StepDuration      float64 `yaml:"step_duration"`
	StepHeightOffset  float64 `yaml:"step_height_offset"`
	StepArcFactor     float64 `yaml:"step_arc_factor"`
	GroundLikeDot     float64 `yaml:"ground_like_dot"`
}

// Limb names a leg and places its home anchor in body-local space.
// Order in the slice is the coordinator's traversal order.
type Limb struct {
	Name   string     `yaml:"name"`
	Offset [3]float64 `yaml:"offset"`
}

// Config is the whole tuning tree.
type Config struct {
	Surface    Surface    `yaml:"surface"`
	Locomotion Locomotion `yaml:"locomotion"`
	Gait       Gait       `yaml:"gait"`
	Limbs      []Limb     `yaml:"limbs"`
}

// Default returns the built-in tuning: a four-legged rig with
// symmetric anchors and diagonal-pair traversal order.
func Default() Config {
	return Config{
		Surface: Surface{
			GroundedThreshold:        constant.GroundedThreshold,
			GroundNormalRayFactor:    constant.GroundNormalRayFactor,
			SurfaceDetectionDistance: constant.SurfaceDetectionDistance,
			SurfaceDotThreshold:      constant.SurfaceDotThreshold,
			ContactExpiry:            constant.ContactExpiry,
			GroundMask:               1,
			SurfaceMask:              1,
		},
		Locomotion: Locomotion{
			Gravity:           constant.Gravity,
			RideHeight:        constant.RideHeight,
			FloatRayLength:    constant.FloatRayLength,
			FloatSpring:       constant.FloatSpring,
			FloatDamper:       constant.FloatDamper,
			JumpFloatCooldown: constant.JumpFloatCooldown,
			UprightSpring:     constant.UprightSpring,
			UprightDamper:     constant.UprightDamper,
			MaxSpeed:          constant.MaxSpeed,
			BaseAccel:         constant.BaseAccel,
			MaxAccelForce:     constant.MaxAccelForce,
			MinMoveSpeed:      constant.MinMoveSpeed,
			JumpForce:         constant.JumpForce,
			// Asymmetric response: reversing intent accelerates harder
			// than speeding up along the current direction.
			ResponseCurve: []CurveKey{
				{T: -1, V: 2.0},
				{T: 0, V: 1.2},
				{T: 1, V: 1.0},
			},
		},
		Gait: Gait{
			TriggerDistance:   constant.StepTriggerDistance,
			TriggerAngle:      constant.StepTriggerAngle,
			OvershootFraction: constant.OvershootFraction,
			FootholdLift:      constant.FootholdLift,
			FootholdRayLength: constant.FootholdRayLength,
			StepDuration:      constant.StepDuration,
			StepHeightOffset:  constant.StepHeightOffset,
			StepArcFactor:     constant.StepArcFactor,
			GroundLikeDot:     constant.GroundLikeDot,
		},
		Limbs: []Limb{
			{Name: "front-left", Offset: [3]float64{-0.35, -0.25, 0.45}},
			{Name: "back-right", Offset: [3]float64{0.35, -0.25, -0.45}},
			{Name: "front-right", Offset: [3]float64{0.35, -0.25, 0.45}},
			{Name: "back-left", Offset: [3]float64{-0.35, -0.25, -0.45}},
		},
	}
}

// Load overlays a YAML document onto the defaults. Fields absent from
// the document keep their default values.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode tuning config: %w", err)
	}
	return cfg, nil
}
