// Command orbit serves the scroll-driven camera orbit to the landing page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-orbit/internal/config"
	"github.com/teslashibe/go-orbit/internal/log"
	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/scroll"
	"github.com/teslashibe/go-orbit/pkg/segment"
	"github.com/teslashibe/go-orbit/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "Config file (or set ORBIT_CONFIG)")
	segmentsFile := flag.String("segments", "", "Segment table file, overrides segments_file")
	port := flag.String("port", "", "HTTP port, overrides port")
	accessLog := flag.Bool("access-log", false, "Log every HTTP request")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *segmentsFile != "" {
		cfg.SegmentsFile = *segmentsFile
	}
	if *port != "" {
		cfg.Port = *port
	}

	log.Init(cfg.LogLevel)

	table, err := loadTable(cfg.SegmentsFile)
	if err != nil {
		var cfgErr *segment.ConfigError
		if errors.As(err, &cfgErr) {
			log.Error("invalid segment table", "file", cfg.SegmentsFile, "index", cfgErr.Index, "id", cfgErr.ID, "error", cfgErr.Err)
		} else {
			log.Error("failed to load segment table", "file", cfg.SegmentsFile, "error", err)
		}
		os.Exit(1)
	}

	fmt.Println("⌚ go-orbit")
	fmt.Printf("   Listen:   %s\n", cfg.Addr())
	fmt.Printf("   Segments: %d (%d features)\n", table.Len(), len(table.Features()))
	fmt.Printf("   Tick:     %s\n", cfg.TickRate)
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := web.NewServer(orbit.New(table), web.Options{
		StaticDir:     cfg.StaticDir,
		ViewportWidth: cfg.ViewportWidth,
		AccessLog:     *accessLog,
		DriverOptions: []scroll.Option{
			scroll.WithRate(cfg.TickRate),
			scroll.WithDeadZone(cfg.DeadZone),
		},
	})

	if err := server.Run(ctx, cfg.Addr()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}

	fmt.Println("👋 Goodbye!")
}

func loadTable(path string) (*segment.Table, error) {
	if path == "" {
		return segment.Reference(), nil
	}
	return segment.Load(path)
}
