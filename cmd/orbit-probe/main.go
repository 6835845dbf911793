// Command orbit-probe drives a running orbit server over its websocket the
// way a page would, and checks every frame against a local evaluation of the
// server's own segment table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-orbit/internal/httpc"
	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/protocol"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

const tolerance = 1e-9

func main() {
	addr := flag.String("addr", "localhost:8080", "Server host:port")
	steps := flag.Int("steps", 20, "Number of scroll reports between 0 and 1")
	width := flag.Int("width", 1280, "Viewport width to report")
	timeout := flag.Duration("timeout", 5*time.Second, "Per-message timeout")
	flag.Parse()

	if *steps < 1 {
		log.Fatalf("steps must be at least 1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var segs protocol.SegmentsData
	apiURL := url.URL{Scheme: "http", Host: *addr, Path: "/api/segments"}
	if err := httpc.GetJSON(ctx, apiURL.String(), &segs); err != nil {
		log.Fatalf("Failed to fetch segments: %v", err)
	}
	table, err := segment.NewTable(segs.Segments)
	if err != nil {
		log.Fatalf("Server returned an invalid table: %v", err)
	}
	local := orbit.New(table)

	fmt.Println("🔭 orbit probe")
	fmt.Printf("   Server:   %s\n", *addr)
	fmt.Printf("   Segments: %d\n", table.Len())
	fmt.Println()

	wsURL := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/scroll"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	p := &probe{conn: conn, timeout: *timeout}

	if _, err := p.expect(protocol.TypeSegments); err != nil {
		log.Fatalf("No segments greeting: %v", err)
	}

	ping, err := protocol.NewPingMessage("")
	if err != nil {
		log.Fatalf("ping: %v", err)
	}
	start := time.Now()
	if err := p.send(ping); err != nil {
		log.Fatalf("ping: %v", err)
	}
	if _, err := p.expect(protocol.TypePong); err != nil {
		log.Fatalf("pong: %v", err)
	}
	fmt.Printf("🏓 round trip %v\n\n", time.Since(start).Round(time.Microsecond))

	mismatches := 0
	for i := 0; i <= *steps; i++ {
		progress := float64(i) / float64(*steps)

		msg, err := protocol.NewScrollMessage(progress, *width)
		if err != nil {
			log.Fatalf("scroll: %v", err)
		}
		sent := time.Now()
		if err := p.send(msg); err != nil {
			log.Fatalf("scroll: %v", err)
		}
		reply, err := p.expect(protocol.TypeFrame)
		if err != nil {
			log.Fatalf("frame: %v", err)
		}
		frame, err := reply.GetFrameData()
		if err != nil {
			log.Fatalf("frame: %v", err)
		}
		rtt := time.Since(sent)

		want, _ := local.MapWidth(progress, *width)
		status := "✅"
		if !samePose(frame.Pose, want.Pose) || frame.Active != want.ActiveID {
			status = "❌"
			mismatches++
		}

		active := frame.Active
		if active == "" {
			active = "-"
		}
		fmt.Printf("%s %.3f %-14s (%7.2f, %7.2f, %7.2f) %v\n",
			status, progress, active, frame.Pose.X, frame.Pose.Y, frame.Pose.Z, rtt.Round(time.Microsecond))
	}

	fmt.Println()
	if mismatches > 0 {
		fmt.Printf("❌ %d of %d frames disagree with the local mapper\n", mismatches, *steps+1)
		os.Exit(1)
	}
	fmt.Printf("✅ %d frames match\n", *steps+1)
}

type probe struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func (p *probe) send(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	p.conn.SetWriteDeadline(time.Now().Add(p.timeout))
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// expect reads the next message and fails on anything but want. Server
// errors are surfaced with their text.
func (p *probe) expect(want protocol.MessageType) (*protocol.Message, error) {
	p.conn.SetReadDeadline(time.Now().Add(p.timeout))
	_, raw, err := p.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	msg, err := protocol.ParseMessage(raw)
	if err != nil {
		return nil, err
	}
	if msg.Type == protocol.TypeError {
		if data, err := msg.GetErrorData(); err == nil {
			return nil, fmt.Errorf("server error: %s", data.Message)
		}
	}
	if msg.Type != want {
		return nil, fmt.Errorf("got %q, want %q", msg.Type, want)
	}
	return msg, nil
}

func samePose(a, b orbit.CameraPose) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}
