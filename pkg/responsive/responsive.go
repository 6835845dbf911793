// Package responsive maps viewport widths to the camera framing used on
// narrow (phone) and wide (desktop) screens.
package responsive

// NarrowBreakpoint is the widest viewport, in logical pixels, that is still
// classified as narrow.
const NarrowBreakpoint = 768

// Class is a device class derived from viewport width.
type Class int

const (
	Wide Class = iota
	Narrow
)

// String returns "wide" or "narrow".
func (c Class) String() string {
	if c == Narrow {
		return "narrow"
	}
	return "wide"
}

// ParseClass is the inverse of String. Unknown names report false.
func ParseClass(s string) (Class, bool) {
	switch s {
	case "wide":
		return Wide, true
	case "narrow":
		return Narrow, true
	default:
		return Wide, false
	}
}

// Profile holds the viewport-dependent scene constants.
type Profile struct {
	FieldOfView float64 `json:"fov"` // vertical, degrees
	OrbitRadius float64 `json:"orbit_radius"`
	OrbitHeight float64 `json:"orbit_height"`
	ModelScale  float64 `json:"model_scale"`

	// Scrub is how long, in seconds, the rendered progress takes to catch
	// up with the scrollbar.
	Scrub float64 `json:"scrub"`

	// PanelThreshold is the local segment fraction after which the active
	// feature's panel is shown.
	PanelThreshold float64 `json:"panel_threshold"`
}

var (
	wideProfile = Profile{
		FieldOfView:    40,
		OrbitRadius:    40,
		OrbitHeight:    10,
		ModelScale:     1,
		Scrub:          0.5,
		PanelThreshold: 0.3,
	}
	narrowProfile = Profile{
		FieldOfView:    50,
		OrbitRadius:    34,
		OrbitHeight:    9,
		ModelScale:     1,
		Scrub:          0.8,
		PanelThreshold: 0.2,
	}
)

// Classify returns Narrow for widths up to and including NarrowBreakpoint.
func Classify(widthPx int) Class {
	if widthPx <= NarrowBreakpoint {
		return Narrow
	}
	return Wide
}

// For returns the profile row for a class.
func For(c Class) Profile {
	if c == Narrow {
		return narrowProfile
	}
	return wideProfile
}

// ForWidth classifies widthPx and returns its class and profile.
func ForWidth(widthPx int) (Class, Profile) {
	c := Classify(widthPx)
	return c, For(c)
}

// Reference is the profile the segment table's camera positions are authored
// against. Poses are rescaled relative to it.
func Reference() Profile {
	return wideProfile
}
