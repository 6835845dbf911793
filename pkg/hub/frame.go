// Package hub fans encoded orbit frames out to websocket observers
// through a single channel-owning goroutine.
package hub

// Frame is one encoded frame queued for observers. Data is a complete JSON
// protocol message and goes out as a websocket text frame.
type Frame struct {
	// Seq orders frames from one producer. Zero means unsequenced.
	Seq  uint64
	Data []byte
}

// NewFrame wraps pre-encoded bytes.
func NewFrame(seq uint64, data []byte) Frame {
	return Frame{Seq: seq, Data: data}
}

// stale reports whether f is older than the last frame sent.
func (f Frame) stale(last *Frame) bool {
	return last != nil && f.Seq != 0 && f.Seq <= last.Seq
}
