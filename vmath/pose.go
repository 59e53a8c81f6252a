package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid placement: position plus orientation.
type Pose struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// IdentityPose returns the origin pose with identity orientation.
func IdentityPose() Pose {
	return Pose{Rot: mgl64.QuatIdent()}
}

// Up returns the pose's local up axis in world space.
func (p Pose) Up() mgl64.Vec3 { return Up(p.Rot) }

// Forward returns the pose's local forward axis in world space.
func (p Pose) Forward() mgl64.Vec3 { return Forward(p.Rot) }
