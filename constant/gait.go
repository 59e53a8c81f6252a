package constant

// Leg stepper and gait coordinator defaults.
const (
	// StepTriggerDistance is the foot-to-anchor drift that triggers a
	// step; StepTriggerAngle (radians) is the orientation deviation
	// that does the same.
	StepTriggerDistance = 0.45
	StepTriggerAngle    = 0.6

	// OvershootFraction of the trigger distance is added past the home
	// anchor when searching for a foothold, so a finished step does
	// not immediately re-trigger.
	OvershootFraction = 0.5

	// FootholdLift raises the foothold ray origin above the anchor so
	// the ray starts clear of the surface.
	FootholdLift = 0.3

	// FootholdRayLength bounds the downward foothold ray.
	FootholdRayLength = 1.5

	// StepDuration is the arc time in seconds; StepHeightOffset lifts
	// the end pose along the anchor up axis; StepArcFactor scales the
	// Bezier control point lift by the start-end distance.
	StepDuration     = 0.22
	StepHeightOffset = 0.05
	StepArcFactor    = 0.5

	// GroundLikeDot is the threshold separating ground-like from
	// wall-like contact normals when averaging planted-foot normals.
	GroundLikeDot = 0.75
)
