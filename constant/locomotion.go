package constant

// Locomotion controller defaults.
const (
	Gravity = 9.81

	// Float spring (ride height).
	RideHeight        = 0.8
	FloatRayLength    = 2.0
	FloatSpring       = 300.0
	FloatDamper       = 30.0
	JumpFloatCooldown = 0.25 // seconds of float suppression after a jump

	// Upright alignment spring.
	UprightSpring = 40.0
	UprightDamper = 8.0

	// Translational control.
	MaxSpeed       = 4.0
	BaseAccel      = 25.0
	MaxAccelForce  = 80.0
	MinMoveSpeed   = 0.05 // below this, facing intent is considered trivial
	JumpForce      = 6.0
)
