// Command orbit-sweep samples the camera orbit across the whole page without
// a browser. Useful for checking a segment table before shipping it.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/protocol"
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

func main() {
	segmentsFile := flag.String("segments", "", "Segment table file (default: built-in table)")
	steps := flag.Int("steps", 100, "Number of intervals between progress 0 and 1")
	width := flag.Int("width", 1280, "Viewport width in logical pixels")
	format := flag.String("format", "text", "Output format: text or json")
	export := flag.String("export", "", "Write the table as yaml or json and exit")
	ease := flag.String("ease", "linear", "Easing: linear or smoothstep")
	flag.Parse()

	if *steps < 1 {
		fail("steps must be at least 1")
	}

	table := segment.Reference()
	if *segmentsFile != "" {
		var err error
		if table, err = segment.Load(*segmentsFile); err != nil {
			fail("%v", err)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *export != "" {
		if err := segment.Encode(out, table, segment.Format(*export)); err != nil {
			fail("%v", err)
		}
		return
	}

	var opts []orbit.Option
	switch *ease {
	case "linear":
	case "smoothstep":
		opts = append(opts, orbit.WithEase(orbit.SmoothStep))
	default:
		fail("unknown easing %q", *ease)
	}
	mapper := orbit.New(table, opts...)

	switch *format {
	case "text":
		fmt.Fprintf(out, "# %d segments, viewport %dpx (%s)\n", table.Len(), *width, responsive.Classify(*width))
		fmt.Fprintf(out, "%-8s %-14s %9s %9s %9s\n", "progress", "active", "x", "y", "z")
	case "json":
	default:
		fail("unknown format %q", *format)
	}

	enc := json.NewEncoder(out)
	for i := 0; i <= *steps; i++ {
		p := float64(i) / float64(*steps)
		f, class := mapper.MapWidth(p, *width)

		if *format == "json" {
			if err := enc.Encode(protocol.FrameFrom(uint64(i), f, class)); err != nil {
				fail("%v", err)
			}
			continue
		}

		active := f.ActiveID
		if active == "" {
			active = "-"
		}
		fmt.Fprintf(out, "%-8.3f %-14s %9.3f %9.3f %9.3f\n", f.Progress, active, f.Pose.X, f.Pose.Y, f.Pose.Z)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "orbit-sweep: "+format+"\n", args...)
	os.Exit(1)
}
