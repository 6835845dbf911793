package orbit

import (
	"math"

	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// Marker fade constants.
const (
	// OrbitWindow widens each feature's range when deciding whether its
	// marker is near enough to stay fully lit.
	OrbitWindow = 0.05

	idleOpacity     = 0.2
	sweepPeak       = 0.8
	outOfRangeScale = 0.4
)

// MarkerState is how one feature's marker and panel should be drawn.
type MarkerState struct {
	ID      string  `json:"id"`
	Active  bool    `json:"active,omitempty"`
	Local   float64 `json:"local"`
	InRange bool    `json:"in_range"`
	Opacity float64 `json:"opacity"`
	Panel   bool    `json:"panel"`
}

// Visibility returns a MarkerState for every feature of t, in table order.
// Return segments have no marker.
func Visibility(t *segment.Table, progress float64, p responsive.Profile) []MarkerState {
	progress = Clamp01(progress)
	return visibility(t, progress, t.Find(progress), p)
}

func visibility(t *segment.Table, progress float64, current int, p responsive.Profile) []MarkerState {
	n := t.Len() - segment.ReturnCount
	out := make([]MarkerState, n)
	for i := 0; i < n; i++ {
		s := t.At(i)
		active := i == current
		local := localFraction(progress, s)
		inRange := progress >= s.Start-OrbitWindow && progress <= s.End+OrbitWindow

		opacity := markerOpacity(active, progress >= s.Start && progress <= s.End, local)
		if !inRange {
			opacity *= outOfRangeScale
		}

		out[i] = MarkerState{
			ID:      s.ID,
			Active:  active,
			Local:   local,
			InRange: inRange,
			Opacity: opacity,
			Panel:   active && local > p.PanelThreshold,
		}
	}
	return out
}

// markerOpacity is fully lit while active, swells and fades across a
// segment the camera is passing through without dwelling, and idles dim.
func markerOpacity(active, within bool, local float64) float64 {
	switch {
	case active:
		return 1
	case within:
		return math.Sin(local*math.Pi) * sweepPeak
	default:
		return idleOpacity
	}
}
