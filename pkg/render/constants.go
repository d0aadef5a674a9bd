package render

import "math"

// Camera constants
const (
	// Radians of rotation per pixel of pointer motion.
	DefaultLookSensitivity = 0.002

	// Pitch stays strictly inside (-π/2, π/2) so that forward never lines
	// up with world up.
	MaxPitch = math.Pi/2 - 0.01
	MinPitch = -MaxPitch

	// Field of view, in radians
	DefaultFOV = math.Pi / 4
	MinFOV     = math.Pi / 180
	MaxFOV     = math.Pi / 2

	NearPlane = 0.1
	FarPlane  = 1000.0
)
