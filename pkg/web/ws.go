package web

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-orbit/pkg/hub"
	"github.com/teslashibe/go-orbit/pkg/protocol"
)

// maxScrollMessage bounds inbound scroll messages; they are tiny JSON objects.
const maxScrollMessage = 4 * 1024

// handleScrollWS is a page session: scroll reports in, frames out.
// Each report is answered directly and also forwarded to the shared driver.
func (s *Server) handleScrollWS(c *websocket.Conn) {
	session := uuid.NewString()
	logger := s.logger.With("session", session)
	logger.Info("scroll session opened")
	defer logger.Info("scroll session closed")

	c.SetReadLimit(maxScrollMessage)

	if msg, err := protocol.NewSegmentsMessage(s.mapper.Table()); err == nil {
		if err := s.write(c, msg); err != nil {
			return
		}
	}

	width := s.opts.ViewportWidth
	var seq uint64

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			logger.Debug("bad message", "err", err)
			if s.writeError(c, "%v", err) != nil {
				return
			}
			continue
		}

		var reply *protocol.Message
		switch msg.Type {
		case protocol.TypeScroll:
			data, err := msg.GetScrollData()
			if err != nil {
				if s.writeError(c, "invalid scroll data: %v", err) != nil {
					return
				}
				continue
			}
			if data.ViewportWidth > 0 {
				width = data.ViewportWidth
			}
			s.driver.SetProgress(data.Progress)
			s.driver.SetViewportWidth(width)

			seq++
			frame, class := s.mapper.MapWidth(data.Progress, width)
			reply, err = protocol.NewFrameMessage(seq, frame, class)
			if err != nil {
				logger.Error("encode frame", "err", err)
				continue
			}

		case protocol.TypePing:
			ping, err := msg.GetPingData()
			if err != nil {
				continue
			}
			reply, err = protocol.NewPongMessage(ping.ID, ping.Timestamp, time.Now().UnixMilli())
			if err != nil {
				continue
			}

		default:
			if s.writeError(c, "unsupported message type %q", msg.Type) != nil {
				return
			}
			continue
		}

		if err := s.write(c, reply); err != nil {
			return
		}
	}
}

// handleFramesWS registers an observer of the shared driver.
func (s *Server) handleFramesWS(c *websocket.Conn) {
	hub.NewClient(s.frames, c).Run()
}

func (s *Server) write(c *websocket.Conn, msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func (s *Server) writeError(c *websocket.Conn, format string, args ...any) error {
	msg, err := protocol.NewErrorMessage(format, args...)
	if err != nil {
		return err
	}
	return s.write(c, msg)
}
