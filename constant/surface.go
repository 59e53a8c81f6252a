// Package constant holds the default tuning values for the locomotion
// core. The config package mirrors these into its Default() tree;
// they are plain numbers so tests can reference them directly.
package constant

// Surface classifier defaults.
const (
	// GroundedThreshold is how far below the body center the ground
	// probe volume is cast, in world units.
	GroundedThreshold = 1.0

	// GroundNormalRayFactor scales the body extent into the short ray
	// that recomputes the ground normal after a probe hit.
	GroundNormalRayFactor = 1.1

	// SurfaceDetectionDistance limits each surface probe ray.
	SurfaceDetectionDistance = 2.5

	// SurfaceDotThreshold separates wall-like normals from ordinary
	// ground: a surface counts only when dot(normal, worldUp) falls
	// below it.
	SurfaceDotThreshold = 0.5

	// ContactExpiry is how long, in seconds, a cached surface normal
	// stays valid without a fresh detection.
	ContactExpiry = 0.5
)
