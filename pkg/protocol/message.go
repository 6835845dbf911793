// Package protocol defines the WebSocket message types exchanged between the
// landing page and the orbit service.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Page → Service messages
	TypeScroll MessageType = "scroll" // Scroll progress and viewport width

	// Service → Page messages
	TypeFrame    MessageType = "frame"    // Camera pose and active feature
	TypeSegments MessageType = "segments" // Segment table snapshot
	TypeError    MessageType = "error"    // Rejected input

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// ErrUnexpectedType is returned by typed getters when the envelope carries a
// different message type.
var ErrUnexpectedType = errors.New("protocol: unexpected message type")

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("failed to parse message: missing type")
	}
	return &msg, nil
}

// =============================================================================
// Page → Service Message Types
// =============================================================================

// ScrollData is one scroll or resize observation from the page.
type ScrollData struct {
	Progress      float64 `json:"progress"`       // 0 = page top, 1 = page bottom
	ViewportWidth int     `json:"viewport_width"` // Logical pixels
}

// =============================================================================
// Service → Page Message Types
// =============================================================================

// FrameData is what the renderer needs to place the camera and highlight UI.
type FrameData struct {
	Seq        uint64              `json:"seq,omitempty"`
	Progress   float64             `json:"progress"`
	Pose       orbit.CameraPose    `json:"pose"`
	Active     string              `json:"active,omitempty"` // Empty while returning to the front
	Segment    int                 `json:"segment"`
	Local      float64             `json:"local"`
	Class      string              `json:"class"` // "narrow" or "wide"
	FOV        float64             `json:"fov"`
	ModelScale float64             `json:"model_scale"`
	Scrub      float64             `json:"scrub"` // Seconds of scroll smoothing
	Markers    []orbit.MarkerState `json:"markers,omitempty"`
}

// SegmentsData is the segment table as the page sees it.
type SegmentsData struct {
	Segments    []segment.FeatureSegment      `json:"segments"`
	ReturnCount int                           `json:"return_count"`
	Breakpoint  int                           `json:"breakpoint"`
	Profiles    map[string]responsive.Profile `json:"profiles"`
}

// ErrorData describes a rejected message.
type ErrorData struct {
	Message string `json:"message"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
