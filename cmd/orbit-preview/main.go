// Command orbit-preview scrolls the landing page tour in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/preview"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

func main() {
	segmentsFile := flag.String("segments", "", "Segment table file (default: built-in table)")
	width := flag.Int("width", preview.DesktopWidth, "Initial viewport width in logical pixels")
	flag.Parse()

	table := segment.Reference()
	if *segmentsFile != "" {
		var err error
		if table, err = segment.Load(*segmentsFile); err != nil {
			fmt.Fprintf(os.Stderr, "orbit-preview: %v\n", err)
			os.Exit(1)
		}
	}

	m := preview.New(orbit.New(table), *width)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "orbit-preview: %v\n", err)
		os.Exit(1)
	}
}
