package orbit

import (
	"math"

	"github.com/teslashibe/go-orbit/pkg/segment"
)

// Ease reshapes a blend fraction in [0,1]. It must map 0 to 0 and 1 to 1.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 {
	return t
}

// SmoothStep eases in and out (slow start and end).
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Lerp performs linear interpolation. Lerp(a, b, 0) is exactly a.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates each component independently.
func LerpVec(a, b segment.Vec3, t float64) segment.Vec3 {
	return segment.Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Clamp01 restricts v to [0,1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// localFraction is the position of progress inside s, clamped to [0,1].
// Degenerate segments report 0.
func localFraction(progress float64, s segment.FeatureSegment) float64 {
	span := s.End - s.Start
	if span <= 0 {
		return 0
	}
	return Clamp01((progress - s.Start) / span)
}
