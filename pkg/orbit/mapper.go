// Package orbit maps a normalized scroll progress onto a camera orbit around
// the product model.
//
// The mapping is a pure function of progress, the segment table and the
// current responsive profile. A Mapper holds only immutable inputs, so one
// value can be shared by any number of goroutines and re-evaluated every
// animation frame without locking.
package orbit

import (
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// CameraPose is a camera position plus the point it looks at.
type CameraPose struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Z      float64      `json:"z"`
	LookAt segment.Vec3 `json:"look_at"`
}

// Position returns the camera position as a vector.
func (p CameraPose) Position() segment.Vec3 {
	return segment.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Frame is the result of one evaluation.
type Frame struct {
	// Progress is the clamped input.
	Progress float64 `json:"progress"`

	Pose CameraPose `json:"pose"`

	// ActiveID is the highlighted feature, or "" while a return segment is
	// playing.
	ActiveID string `json:"active,omitempty"`

	// Segment and Next are the table indices being blended; Local is the
	// blend fraction between them before easing.
	Segment int     `json:"segment"`
	Next    int     `json:"next"`
	Local   float64 `json:"local"`

	Profile responsive.Profile `json:"profile"`

	// Markers holds one entry per feature, return segments excluded.
	Markers []MarkerState `json:"markers"`
}

// HasActive reports whether a feature is highlighted.
func (f Frame) HasActive() bool {
	return f.ActiveID != ""
}

// Mapper evaluates scroll progress against a segment table.
type Mapper struct {
	table     *segment.Table
	reference responsive.Profile
	ease      Ease
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithEase replaces the linear blend between segment targets.
func WithEase(e Ease) Option {
	return func(m *Mapper) {
		if e != nil {
			m.ease = e
		}
	}
}

// WithReference sets the profile the table's camera positions were authored
// against. Defaults to responsive.Reference().
func WithReference(p responsive.Profile) Option {
	return func(m *Mapper) {
		m.reference = p
	}
}

// New returns a Mapper over table.
func New(table *segment.Table, opts ...Option) *Mapper {
	m := &Mapper{
		table:     table,
		reference: responsive.Reference(),
		ease:      Linear,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Table returns the segment table the mapper reads.
func (m *Mapper) Table() *segment.Table {
	return m.table
}

// MapProgress returns the camera pose and active feature for progress under
// profile p.
//
// Progress outside [0,1] is clamped (NaN maps to 0); it never produces an
// undefined pose. A progress exactly on a boundary belongs to the segment
// that starts there. Progress 1 resolves to the last segment blending toward
// the first, which closes the 360° loop.
func (m *Mapper) MapProgress(progress float64, p responsive.Profile) Frame {
	progress = Clamp01(progress)

	si := m.table.Find(progress)
	ni := m.table.Next(si)
	s := m.table.At(si)
	n := m.table.At(ni)

	local := localFraction(progress, s)
	blend := m.ease(local)

	pos := LerpVec(s.Camera.Position, n.Camera.Position, blend)
	look := LerpVec(s.Camera.Target(), n.Camera.Target(), blend)

	radial, vertical := m.scale(p)

	frame := Frame{
		Progress: progress,
		Pose: CameraPose{
			X:      pos.X * radial,
			Y:      pos.Y * vertical,
			Z:      pos.Z * radial,
			LookAt: look,
		},
		Segment: si,
		Next:    ni,
		Local:   local,
		Profile: p,
	}
	if !m.table.IsReturn(si) {
		frame.ActiveID = s.ID
	}
	frame.Markers = visibility(m.table, progress, si, p)
	return frame
}

// MapWidth classifies viewportWidthPx and maps progress under that profile.
func (m *Mapper) MapWidth(progress float64, viewportWidthPx int) (Frame, responsive.Class) {
	class, profile := responsive.ForWidth(viewportWidthPx)
	return m.MapProgress(progress, profile), class
}

// scale returns the x/z and y multipliers for p relative to the reference.
func (m *Mapper) scale(p responsive.Profile) (radial, vertical float64) {
	radial, vertical = 1, 1
	if m.reference.OrbitRadius != 0 && p.OrbitRadius != 0 {
		radial = p.OrbitRadius / m.reference.OrbitRadius
	}
	if m.reference.OrbitHeight != 0 && p.OrbitHeight != 0 {
		vertical = p.OrbitHeight / m.reference.OrbitHeight
	}
	return radial, vertical
}
