package protocol

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewScrollMessage creates a scroll message
func NewScrollMessage(progress float64, viewportWidth int) (*Message, error) {
	return NewMessage(TypeScroll, ScrollData{
		Progress:      progress,
		ViewportWidth: viewportWidth,
	})
}

// FrameFrom converts a mapper frame into its wire form.
func FrameFrom(seq uint64, f orbit.Frame, class responsive.Class) FrameData {
	return FrameData{
		Seq:        seq,
		Progress:   f.Progress,
		Pose:       f.Pose,
		Active:     f.ActiveID,
		Segment:    f.Segment,
		Local:      f.Local,
		Class:      class.String(),
		FOV:        f.Profile.FieldOfView,
		ModelScale: f.Profile.ModelScale,
		Scrub:      f.Profile.Scrub,
		Markers:    f.Markers,
	}
}

// NewFrameMessage creates a frame message
func NewFrameMessage(seq uint64, f orbit.Frame, class responsive.Class) (*Message, error) {
	return NewMessage(TypeFrame, FrameFrom(seq, f, class))
}

// SegmentsFrom snapshots a table together with the responsive profiles.
func SegmentsFrom(t *segment.Table) SegmentsData {
	return SegmentsData{
		Segments:    t.Segments(),
		ReturnCount: segment.ReturnCount,
		Breakpoint:  responsive.NarrowBreakpoint,
		Profiles: map[string]responsive.Profile{
			responsive.Wide.String():   responsive.For(responsive.Wide),
			responsive.Narrow.String(): responsive.For(responsive.Narrow),
		},
	}
}

// NewSegmentsMessage creates a segment table message
func NewSegmentsMessage(t *segment.Table) (*Message, error) {
	return NewMessage(TypeSegments, SegmentsFrom(t))
}

// NewErrorMessage creates an error message
func NewErrorMessage(format string, args ...any) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Message: fmt.Sprintf(format, args...)})
}

// NewPingMessage creates a ping message. An empty id gets a random one.
func NewPingMessage(id string) (*Message, error) {
	if id == "" {
		id = uuid.NewString()
	}
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

func (m *Message) expect(t MessageType) error {
	if m.Type != t {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedType, m.Type, t)
	}
	return nil
}

// GetScrollData extracts scroll data from a message
func (m *Message) GetScrollData() (*ScrollData, error) {
	if err := m.expect(TypeScroll); err != nil {
		return nil, err
	}
	var data ScrollData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetFrameData extracts frame data from a message
func (m *Message) GetFrameData() (*FrameData, error) {
	if err := m.expect(TypeFrame); err != nil {
		return nil, err
	}
	var data FrameData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSegmentsData extracts the segment table from a message
func (m *Message) GetSegmentsData() (*SegmentsData, error) {
	if err := m.expect(TypeSegments); err != nil {
		return nil, err
	}
	var data SegmentsData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetErrorData extracts error details from a message
func (m *Message) GetErrorData() (*ErrorData, error) {
	if err := m.expect(TypeError); err != nil {
		return nil, err
	}
	var data ErrorData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	if err := m.expect(TypePing); err != nil {
		return nil, err
	}
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	if err := m.expect(TypePong); err != nil {
		return nil, err
	}
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
