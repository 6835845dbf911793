package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/protocol"
	"github.com/teslashibe/go-orbit/pkg/scroll"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	opts.DriverOptions = append(opts.DriverOptions, scroll.WithRate(time.Millisecond))
	return NewServer(orbit.New(segment.Reference()), opts)
}

func doJSON(t *testing.T, s *Server, req *http.Request, wantStatus int, out any) {
	t.Helper()
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", body)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})

	var got HealthResponse
	doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil), http.StatusOK, &got)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 7, got.Segments)
	assert.Equal(t, scroll.DefaultViewportWidth, got.Driver.ViewportWidth)
}

func TestSegments(t *testing.T) {
	s := newTestServer(t, Options{})

	var got protocol.SegmentsData
	doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/segments", nil), http.StatusOK, &got)
	require.Len(t, got.Segments, 7)
	assert.Equal(t, segment.IDDisplay, got.Segments[0].ID)
	assert.Equal(t, 2, got.ReturnCount)
	assert.Contains(t, got.Profiles, "narrow")
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		query      string
		wantStatus int
		wantClass  string
	}{
		{"?width=375", http.StatusOK, "narrow"},
		{"?width=768", http.StatusOK, "narrow"},
		{"?width=769", http.StatusOK, "wide"},
		{"", http.StatusOK, "wide"},
		{"?width=abc", http.StatusBadRequest, ""},
		{"?width=-5", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got ProfileResponse
			var out any
			if tt.wantStatus == http.StatusOK {
				out = &got
			}
			doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/profile"+tt.query, nil), tt.wantStatus, out)
			assert.Equal(t, tt.wantClass, got.Class)
		})
	}
}

func TestPose(t *testing.T) {
	s := newTestServer(t, Options{})
	tbl := segment.Reference()

	var got protocol.FrameData
	doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/pose?progress=0.2&width=1440", nil), http.StatusOK, &got)
	assert.Equal(t, segment.IDUSBSlot, got.Active)
	assert.Equal(t, tbl.At(1).Camera.Position, got.Pose.Position())
	assert.Equal(t, "wide", got.Class)

	got = protocol.FrameData{}
	doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/pose?progress=0.95&width=390", nil), http.StatusOK, &got)
	assert.Empty(t, got.Active)
	assert.Equal(t, "narrow", got.Class)

	// Out-of-range progress is clamped rather than rejected.
	got = protocol.FrameData{}
	doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/pose?progress=7", nil), http.StatusOK, &got)
	assert.Equal(t, 1.0, got.Progress)
}

func TestPoseRejectsBadInput(t *testing.T) {
	s := newTestServer(t, Options{})

	for _, q := range []string{"", "?progress=", "?progress=half", "?progress=0.5&width=0"} {
		var body map[string]string
		doJSON(t, s, httptest.NewRequest(http.MethodGet, "/api/pose"+q, nil), http.StatusBadRequest, &body)
		assert.NotEmpty(t, body["error"], "query %q", q)
	}
}

func TestScrollFeedsDriver(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/scroll", strings.NewReader(`{"progress":0.75,"viewport_width":390}`))
	req.Header.Set("Content-Type", "application/json")

	var got protocol.FrameData
	doJSON(t, s, req, http.StatusAccepted, &got)
	assert.Equal(t, segment.IDStrap, got.Active)

	progress, width := s.Driver().Input()
	assert.Equal(t, 0.75, progress)
	assert.Equal(t, 390, width)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	s := newTestServer(t, Options{})
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/ws/scroll", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>orbit</h1>"), 0o644))
	s := newTestServer(t, Options{StaticDir: dir})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "orbit")
}

// listen serves s on a random local port and returns ws:// base URL.
func listen(t *testing.T, s *Server) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Frames().Run(ctx)
	go s.Driver().Run(ctx)
	go s.App().Listener(ln)
	t.Cleanup(func() {
		cancel()
		s.App().Shutdown()
	})
	return "ws://" + ln.Addr().String()
}

func readMessage(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.ParseMessage(raw)
	require.NoError(t, err)
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg *protocol.Message) {
	t.Helper()
	data, err := msg.Bytes()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestScrollSession(t *testing.T) {
	s := newTestServer(t, Options{})
	base := listen(t, s)

	conn, _, err := websocket.DefaultDialer.Dial(base+"/ws/scroll", nil)
	require.NoError(t, err)
	defer conn.Close()

	hello := readMessage(t, conn)
	require.Equal(t, protocol.TypeSegments, hello.Type)

	scrollMsg, err := protocol.NewScrollMessage(0.425, 1280)
	require.NoError(t, err)
	send(t, conn, scrollMsg)

	reply := readMessage(t, conn)
	frame, err := reply.GetFrameData()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), frame.Seq)
	assert.Equal(t, segment.IDRotaryButton, frame.Active)
	assert.InDelta(t, 0.5, frame.Local, 1e-9)

	// Width sticks for later reports that omit it.
	resize, _ := protocol.NewScrollMessage(0.1, 390)
	send(t, conn, resize)
	assert.Equal(t, "narrow", mustFrame(t, readMessage(t, conn)).Class)

	again, _ := protocol.NewScrollMessage(0.3, 0)
	send(t, conn, again)
	assert.Equal(t, "narrow", mustFrame(t, readMessage(t, conn)).Class)

	ping, _ := protocol.NewPingMessage("abc")
	send(t, conn, ping)
	pong, err := readMessage(t, conn).GetPongData()
	require.NoError(t, err)
	assert.Equal(t, "abc", pong.ID)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"teleport"}`)))
	errData, err := readMessage(t, conn).GetErrorData()
	require.NoError(t, err)
	assert.Contains(t, errData.Message, "teleport")
}

func mustFrame(t *testing.T, msg *protocol.Message) *protocol.FrameData {
	t.Helper()
	f, err := msg.GetFrameData()
	require.NoError(t, err)
	return f
}

func TestFramesObserver(t *testing.T) {
	s := newTestServer(t, Options{})
	base := listen(t, s)

	observer, _, err := websocket.DefaultDialer.Dial(base+"/ws/frames", nil)
	require.NoError(t, err)
	defer observer.Close()

	driver, _, err := websocket.DefaultDialer.Dial(base+"/ws/scroll", nil)
	require.NoError(t, err)
	defer driver.Close()
	readMessage(t, driver) // segments

	msg, _ := protocol.NewScrollMessage(0.6, 1280)
	send(t, driver, msg)

	// The observer sees frames from the shared driver until it reaches the
	// reported position.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f := mustFrame(t, readMessage(t, observer))
		if f.Active == segment.IDHeartRate {
			return
		}
	}
	t.Fatal("observer never saw the heart-rate frame")
}
