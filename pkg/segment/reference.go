package segment

// Reference feature ids.
const (
	IDDisplay      = "display"
	IDUSBSlot      = "usb-slot"
	IDRotaryButton = "rotary-button"
	IDHeartRate    = "heart-rate"
	IDStrap        = "strap"
	IDReturnFront  = "return-front"
	IDReturnFront2 = "return-front-2"
)

// MarkerGold is the marker color every reference feature uses.
const MarkerGold = "#D4AF37"

// reference is the landing page's built-in tour of the watch. Camera
// positions are authored for the wide viewport and all look at the origin.
var reference = []FeatureSegment{
	{
		ID:          IDDisplay,
		Title:       "Ultra-clear AMOLED Display",
		Description: "Ultra-clear AMOLED display with adaptive brightness for perfect visibility in any lighting conditions.",
		Start:       0,
		End:         0.2,
		Marker:      V(-0.15, 0, 0.1),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(0, 0, 5)},
	},
	{
		ID:          IDUSBSlot,
		Title:       "USB-C Charging Slot",
		Description: "USB-C charging slot with seamless integration for efficient and secure docking.",
		Start:       0.2,
		End:         0.35,
		Marker:      V(0.55, -0.2, 0),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(5, 0, 0)},
	},
	{
		ID:          IDRotaryButton,
		Title:       "Precision Rotary Crown",
		Description: "Precision rotary crown with shortcut support for effortless navigation and control.",
		Start:       0.35,
		End:         0.5,
		Marker:      V(0.55, 0.2, -0.3),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(5, 0, 0)}, // shares the USB slot framing
	},
	{
		ID:          IDHeartRate,
		Title:       "Optical Heart Rate Sensor",
		Description: "Optical sensor for continuous heart rate monitoring and accurate health insights.",
		Start:       0.5,
		End:         0.7,
		Marker:      V(-0.1, -0.1, -0.4),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(2, 0.5, -2)},
	},
	{
		ID:          IDStrap,
		Title:       "Adjustable Comfort Strap",
		Description: "Adjustable fit clasp and interchangeable straps for comfort and personalization.",
		Start:       0.7,
		End:         0.9,
		Marker:      V(-0.2, 0.5, -1.8),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(0, 4, -8)},
	},
	{
		ID:          IDReturnFront,
		Start:       0.9,
		End:         0.95,
		Marker:      V(0, 0.5, 0.8),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(-4, 2, -2)},
	},
	{
		ID:          IDReturnFront2,
		Start:       0.95,
		End:         1,
		Marker:      V(0, 0.5, 0.8),
		MarkerColor: MarkerGold,
		Camera:      CameraTarget{Position: V(-6, 0, 0)},
	},
}

// Reference returns the built-in segment table.
func Reference() *Table {
	return MustTable(reference)
}
