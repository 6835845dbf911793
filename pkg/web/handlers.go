package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-orbit/pkg/protocol"
	"github.com/teslashibe/go-orbit/pkg/responsive"
)

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string       `json:"status"`
	Segments  int          `json:"segments"`
	Observers int          `json:"observers"`
	Driver    driverHealth `json:"driver"`
}

type driverHealth struct {
	Progress      float64 `json:"progress"`
	ViewportWidth int     `json:"viewport_width"`
	Ticks         uint64  `json:"ticks"`
	Published     uint64  `json:"published"`
	Skipped       uint64  `json:"skipped"`
	Errors        uint64  `json:"errors"`
}

// ProfileResponse is returned by GET /api/profile.
type ProfileResponse struct {
	Width   int                `json:"width"`
	Class   string             `json:"class"`
	Profile responsive.Profile `json:"profile"`
}

// handleHealth reports liveness and driver counters
func (s *Server) handleHealth(c *fiber.Ctx) error {
	progress, width := s.driver.Input()
	stats := s.driver.Stats()
	return c.JSON(HealthResponse{
		Status:    "ok",
		Segments:  s.mapper.Table().Len(),
		Observers: s.frames.ClientCount(),
		Driver: driverHealth{
			Progress:      progress,
			ViewportWidth: width,
			Ticks:         stats.Ticks,
			Published:     stats.Published,
			Skipped:       stats.Skipped,
			Errors:        stats.Errors,
		},
	})
}

// handleSegments returns the segment table and responsive profiles
func (s *Server) handleSegments(c *fiber.Ctx) error {
	return c.JSON(protocol.SegmentsFrom(s.mapper.Table()))
}

// handleProfile classifies a viewport width
func (s *Server) handleProfile(c *fiber.Ctx) error {
	width, err := s.widthParam(c)
	if err != nil {
		return err
	}
	class, profile := responsive.ForWidth(width)
	return c.JSON(ProfileResponse{
		Width:   width,
		Class:   class.String(),
		Profile: profile,
	})
}

// handlePose evaluates one frame without touching the shared driver
func (s *Server) handlePose(c *fiber.Ctx) error {
	raw := c.Query("progress")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "progress is required")
	}
	progress, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "progress must be a number")
	}
	width, err := s.widthParam(c)
	if err != nil {
		return err
	}

	frame, class := s.mapper.MapWidth(progress, width)
	return c.JSON(protocol.FrameFrom(0, frame, class))
}

// handleScroll feeds the shared driver and answers with the frame for that input
func (s *Server) handleScroll(c *fiber.Ctx) error {
	var req protocol.ScrollData
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scroll body: "+err.Error())
	}
	if req.ViewportWidth <= 0 {
		req.ViewportWidth = s.opts.ViewportWidth
	}

	s.driver.SetProgress(req.Progress)
	s.driver.SetViewportWidth(req.ViewportWidth)

	frame, class := s.mapper.MapWidth(req.Progress, req.ViewportWidth)
	return c.Status(fiber.StatusAccepted).JSON(protocol.FrameFrom(0, frame, class))
}

// widthParam reads ?width=, defaulting to the configured viewport width.
func (s *Server) widthParam(c *fiber.Ctx) (int, error) {
	raw := c.Query("width")
	if raw == "" {
		return s.opts.ViewportWidth, nil
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "width must be a positive integer")
	}
	return width, nil
}
