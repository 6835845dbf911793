package scroll

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-orbit/internal/log"
	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// recordingSink records every rendered update.
type recordingSink struct {
	mu      sync.Mutex
	updates []Update
	err     error
}

func (s *recordingSink) Render(u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.updates = append(s.updates, u)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func newTestDriver(sink Sink, opts ...Option) *Driver {
	opts = append([]Option{WithLogger(log.New(io.Discard, "error", false))}, opts...)
	return NewDriver(orbit.New(segment.Reference()), sink, opts...)
}

func TestStepPublishesFirstFrame(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink)

	u, sent := d.Step()
	require.True(t, sent)
	assert.Equal(t, uint64(1), u.Seq)
	assert.Equal(t, segment.IDDisplay, u.Frame.ActiveID)
	assert.Equal(t, responsive.Wide, u.Class)
	assert.Equal(t, 1, sink.count())
}

func TestStepSkipsUnchangedInput(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink)

	d.Step()
	_, sent := d.Step()
	assert.False(t, sent)

	s := d.Stats()
	assert.Equal(t, uint64(2), s.Ticks)
	assert.Equal(t, uint64(1), s.Skipped)
	assert.Equal(t, uint64(1), s.Published)
}

func TestDeadZone(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink, WithDeadZone(0.5))

	d.SetProgress(0.1)
	d.Step()

	// 1e-6 of progress moves the camera far less than half a unit.
	d.SetProgress(0.100001)
	_, sent := d.Step()
	assert.False(t, sent)

	d.SetProgress(0.15)
	_, sent = d.Step()
	assert.True(t, sent)
}

func TestLastWriteWins(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink)

	d.SetProgress(0.1)
	d.SetProgress(0.6)
	d.SetProgress(0.425)

	u, _ := d.Step()
	assert.Equal(t, segment.IDRotaryButton, u.Frame.ActiveID)
	assert.Equal(t, 0.425, u.Frame.Progress)
}

func TestResizeRepublishes(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink)

	d.SetProgress(0.3)
	wide, _ := d.Step()

	d.SetViewportWidth(390)
	narrow, sent := d.Step()
	require.True(t, sent)
	assert.Equal(t, responsive.Narrow, narrow.Class)
	assert.InDelta(t, wide.Frame.Pose.X*34/40, narrow.Frame.Pose.X, 1e-9)
}

func TestActiveChangeAlwaysPublishes(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink, WithDeadZone(1000))

	d.SetProgress(0.8999999)
	d.Step()
	d.SetProgress(0.9)
	u, sent := d.Step()
	require.True(t, sent)
	assert.Empty(t, u.Frame.ActiveID)
}

func TestSinkErrorsAreCounted(t *testing.T) {
	sink := &recordingSink{err: errors.New("canvas lost")}
	d := newTestDriver(sink)

	_, sent := d.Step()
	assert.False(t, sent)
	_, ok := d.Latest()
	assert.False(t, ok)
	assert.Equal(t, uint64(1), d.Stats().Errors)

	// A later successful render still goes out.
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()
	_, sent = d.Step()
	assert.True(t, sent)
}

func TestRunStopsOnCancel(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDriver(sink, WithRate(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.count() >= 1 }, time.Second, time.Millisecond)

	d.SetProgress(0.75)
	require.Eventually(t, func() bool {
		u, ok := d.Latest()
		return ok && u.Frame.ActiveID == segment.IDStrap
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSinkFunc(t *testing.T) {
	var got Update
	d := newTestDriver(SinkFunc(func(u Update) error {
		got = u
		return nil
	}))
	d.SetProgress(0.55)
	d.Step()
	assert.Equal(t, segment.IDHeartRate, got.Frame.ActiveID)
}
