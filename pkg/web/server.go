// Package web serves the landing page and the orbit API it calls.
//
// The page reports scroll progress and viewport width over /ws/scroll (or
// POST /api/scroll) and receives camera frames back. Every report also feeds a
// shared scroll driver whose frames are fanned out to /ws/frames observers,
// e.g. a presenter screen mirroring a visitor's scroll.
package web

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-orbit/internal/log"
	"github.com/teslashibe/go-orbit/pkg/hub"
	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/protocol"
	"github.com/teslashibe/go-orbit/pkg/scroll"
)

// Options configures a Server.
type Options struct {
	// StaticDir is served at "/". Empty disables static files.
	StaticDir string

	// ViewportWidth is assumed when a request omits one.
	ViewportWidth int

	// Driver options for the shared scroll driver.
	DriverOptions []scroll.Option

	// AccessLog enables per-request logging.
	AccessLog bool
}

// Server is the landing page backend.
type Server struct {
	app    *fiber.App
	opts   Options
	logger *slog.Logger

	mapper *orbit.Mapper
	driver *scroll.Driver
	frames *hub.Hub
}

// NewServer wires the HTTP and websocket routes around mapper.
func NewServer(mapper *orbit.Mapper, opts Options) *Server {
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = scroll.DefaultViewportWidth
	}

	s := &Server{
		opts:   opts,
		logger: log.Component("web"),
		mapper: mapper,
		frames: hub.New("frames"),
	}

	driverOpts := append([]scroll.Option{scroll.WithViewportWidth(opts.ViewportWidth)}, opts.DriverOptions...)
	s.driver = scroll.NewDriver(mapper, scroll.SinkFunc(s.publish), driverOpts...)

	app := fiber.New(fiber.Config{
		AppName:               "go-orbit",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	// API routes
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/segments", s.handleSegments)
	api.Get("/profile", s.handleProfile)
	api.Get("/pose", s.handlePose)
	api.Post("/scroll", s.handleScroll)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/scroll", websocket.New(s.handleScrollWS))
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	// Static files
	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Driver returns the shared scroll driver.
func (s *Server) Driver() *scroll.Driver {
	return s.driver
}

// Frames returns the hub that fans out driver frames.
func (s *Server) Frames() *hub.Hub {
	return s.frames
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.frames.Run(ctx)
	go s.driver.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		if err := s.app.Shutdown(); err != nil {
			return err
		}
		return nil
	}
}

// publish is the driver's sink: encode the frame once and fan it out.
func (s *Server) publish(u scroll.Update) error {
	msg, err := protocol.NewFrameMessage(u.Seq, u.Frame, u.Class)
	if err != nil {
		return err
	}
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	s.frames.Broadcast(hub.NewFrame(u.Seq, data))
	return nil
}

// errorHandler renders every error as {"error": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
