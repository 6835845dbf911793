// Package preview is a terminal stand-in for the landing page: keys and the
// mouse wheel play the role of page scroll, and the view shows what the
// renderer would do with each frame.
package preview

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/responsive"
	"github.com/teslashibe/go-orbit/pkg/segment"
)

// Viewport widths the preview toggles between.
const (
	PhoneWidth   = 390
	DesktopWidth = 1280
)

const (
	lineStep = 0.01
	pageStep = 0.1
	barWidth = 40
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the Bubble Tea model.
type Model struct {
	mapper   *orbit.Mapper
	progress float64
	width    int

	frame orbit.Frame
	class responsive.Class
}

// New returns a model positioned at the top of the page.
func New(mapper *orbit.Mapper, viewportWidth int) Model {
	m := Model{mapper: mapper, width: viewportWidth}
	return m.evaluate()
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "down", "j":
			m.progress += lineStep
		case "up", "k":
			m.progress -= lineStep
		case "pgdown", " ":
			m.progress += pageStep
		case "pgup":
			m.progress -= pageStep
		case "home", "g":
			m.progress = 0
		case "end", "G":
			m.progress = 1
		case "w":
			if m.class == responsive.Narrow {
				m.width = DesktopWidth
			} else {
				m.width = PhoneWidth
			}
		default:
			return m, nil
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.progress += lineStep
		case tea.MouseButtonWheelUp:
			m.progress -= lineStep
		default:
			return m, nil
		}
	default:
		return m, nil
	}
	return m.evaluate(), nil
}

// evaluate clamps the scroll position and recomputes the frame.
func (m Model) evaluate() Model {
	m.progress = orbit.Clamp01(m.progress)
	// Snap away accumulated float drift so key presses land on round values.
	m.progress = math.Round(m.progress*1e6) / 1e6
	m.frame, m.class = m.mapper.MapWidth(m.progress, m.width)
	return m
}

// Progress returns the current scroll position.
func (m Model) Progress() float64 {
	return m.progress
}

// Frame returns the frame for the current scroll position.
func (m Model) Frame() orbit.Frame {
	return m.frame
}

// Class returns the current device class.
func (m Model) Class() responsive.Class {
	return m.class
}

// View implements tea.Model interface.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⌚ orbit preview"))
	b.WriteString("\n\n")
	b.WriteString(progressBar(m.progress, barWidth))
	b.WriteString(fmt.Sprintf(" %5.1f%%\n\n", m.progress*100))

	tbl := m.mapper.Table()
	if m.frame.HasActive() {
		s := tbl.At(m.frame.Segment)
		b.WriteString(activeStyle.Render(s.Title))
		b.WriteString("\n")
		if m.panelVisible() {
			b.WriteString(s.Description)
		}
	} else {
		b.WriteString(dimStyle.Render("returning to the front…"))
		b.WriteString("\n")
	}
	b.WriteString("\n\n")

	p := m.frame.Pose
	info := fmt.Sprintf("camera  x=%7.2f y=%7.2f z=%7.2f\nlook-at x=%7.2f y=%7.2f z=%7.2f\nviewport %s (%dpx) fov=%.0f° scale=%.2f\nsegment %d→%d  t=%.3f",
		p.X, p.Y, p.Z,
		p.LookAt.X, p.LookAt.Y, p.LookAt.Z,
		m.class, m.width, m.frame.Profile.FieldOfView, m.frame.Profile.ModelScale,
		m.frame.Segment, m.frame.Next, m.frame.Local)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(orbitPlot(tbl, p, 33, 13)),
		" ",
		lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Render(info),
			panelStyle.Render(markerList(m.frame.Markers)),
		),
	))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ scroll · pgup/pgdn page · g/G top/bottom · w phone/desktop · q quit"))
	return b.String()
}

// panelVisible reports whether the active feature's panel is showing.
func (m Model) panelVisible() bool {
	for _, ms := range m.frame.Markers {
		if ms.Active {
			return ms.Panel
		}
	}
	return false
}

// markerList renders one line per feature marker with its opacity.
func markerList(markers []orbit.MarkerState) string {
	lines := make([]string, len(markers))
	for i, ms := range markers {
		flag := " "
		if ms.Panel {
			flag = "▸"
		}
		lines[i] = fmt.Sprintf("%s %s %-14s %.2f", flag, progressBar(ms.Opacity, 10), ms.ID, ms.Opacity)
	}
	return strings.Join(lines, "\n")
}

// progressBar renders p in [0,1] as a bar width cells wide.
func progressBar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// orbitPlot draws the x/z plane from above: the model at the center, each
// feature's camera target as its 1-based number, return targets as '·' and
// the live camera as '@'. The plot is sized to the table's widest target.
func orbitPlot(tbl *segment.Table, pose orbit.CameraPose, cols, rows int) string {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	extent := plotExtent(tbl)
	put := func(x, z float64, ch rune, over bool) {
		c := int(math.Round((x + extent) / (2 * extent) * float64(cols-1)))
		r := int(math.Round((z + extent) / (2 * extent) * float64(rows-1)))
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return
		}
		// Features sharing a target keep the first label.
		if over || grid[r][c] == ' ' {
			grid[r][c] = ch
		}
	}

	put(0, 0, 'W', false)
	for i := 0; i < tbl.Len(); i++ {
		pos := tbl.At(i).Camera.Position
		ch := '·'
		if !tbl.IsReturn(i) && i < 9 {
			ch = rune('1' + i)
		}
		put(pos.X, pos.Z, ch, false)
	}
	put(pose.X, pose.Z, '@', true)

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}

// plotExtent is the half-width of the plot in scene units: the farthest
// camera target on either horizontal axis, plus a margin.
func plotExtent(tbl *segment.Table) float64 {
	extent := 1.0
	for _, s := range tbl.Segments() {
		extent = max(extent, math.Abs(s.Camera.Position.X), math.Abs(s.Camera.Position.Z))
	}
	return extent * 1.25
}
