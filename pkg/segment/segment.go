// Package segment defines the feature segment table that drives the product orbit.
//
// A table is an ordered list of feature segments whose half-open progress
// ranges [Start, End) tile [0,1] without gaps or overlaps. Each segment names
// a product feature, a marker position on the model and the camera target the
// orbit passes through. The last two entries are return segments: they bring
// the camera back toward the opening framing and are never reported as an
// active feature.
package segment

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// CameraTarget is the camera position a segment frames, plus an optional
// look-at override. A nil LookAt means the origin.
type CameraTarget struct {
	Position Vec3  `json:"position" yaml:"position"`
	LookAt   *Vec3 `json:"look_at,omitempty" yaml:"look_at,omitempty"`
}

// Target returns the effective look-at point.
func (c CameraTarget) Target() Vec3 {
	if c.LookAt == nil {
		return Vec3{}
	}
	return *c.LookAt
}

// FeatureSegment is one entry of the table.
type FeatureSegment struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Start       float64      `json:"start" yaml:"start"`
	End         float64      `json:"end" yaml:"end"`
	Marker      Vec3         `json:"marker" yaml:"marker"`
	MarkerColor string       `json:"marker_color,omitempty" yaml:"marker_color,omitempty"` // CSS color
	Camera      CameraTarget `json:"camera" yaml:"camera"`
}

// Contains reports whether progress falls in [Start, End).
func (s FeatureSegment) Contains(progress float64) bool {
	return progress >= s.Start && progress < s.End
}

// Span returns End - Start.
func (s FeatureSegment) Span() float64 {
	return s.End - s.Start
}

// clone copies the segment so callers never share the LookAt pointer with the table.
func (s FeatureSegment) clone() FeatureSegment {
	if s.Camera.LookAt != nil {
		la := *s.Camera.LookAt
		s.Camera.LookAt = &la
	}
	return s
}
