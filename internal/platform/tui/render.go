package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// glyph is how an entity kind looks on the grid.
type glyph struct {
	r     rune
	color core.Color
}

var glyphs = map[crossing.Kind]glyph{
	crossing.KindPlayer1:   {'▲', core.ColorGreen},
	crossing.KindPlayer2:   {'▼', core.ColorBrightCyan},
	crossing.KindExplosion: {'✶', core.ColorBrightRed},
	crossing.KindBlackHole: {'@', core.ColorMagenta},
	crossing.KindAsteroid:  {'O', core.ColorOrange},
	crossing.KindDockSite:  {'┄', core.ColorGray},
}

// ArenaRenderer projects arena coordinates onto a terminal grid.
type ArenaRenderer struct {
	arenaW float64
	arenaH float64
}

// NewArenaRenderer creates a renderer for an arena of the given size in
// arena units. Non-positive sizes fall back to 400x750.
func NewArenaRenderer(width, height int) ArenaRenderer {
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 750
	}
	return ArenaRenderer{arenaW: float64(width), arenaH: float64(height)}
}

// Layout places the bordered arena box below the HUD row of a termW x termH
// grid. The box keeps the arena's aspect ratio, assuming cells are twice as
// tall as they are wide.
func (ar ArenaRenderer) Layout(termW, termH int) core.Rect {
	boxH := max(termH-1, 3)
	innerH := boxH - 2
	innerW := int(math.Round(float64(innerH) * ar.arenaW / ar.arenaH * 2))
	boxW := min(max(innerW+2, 3), max(termW, 3))
	return core.NewRect(max((termW-boxW)/2, 0), 1, boxW, boxH)
}

// Project maps an arena position into a cell inside area.
func (ar ArenaRenderer) Project(pos core.Vec, area core.Rect) (int, int) {
	x, y := ar.cell(pos, area)
	return core.Clamp(x, area.X, area.Right()-1), core.Clamp(y, area.Y, area.Bottom()-1)
}

// cell maps an arena position onto the grid without clamping.
func (ar ArenaRenderer) cell(pos core.Vec, area core.Rect) (int, int) {
	col := int(math.Floor(pos.X / ar.arenaW * float64(area.W)))
	row := int(math.Floor(pos.Y / ar.arenaH * float64(area.H)))
	return area.X + col, area.Y + row
}

// Draw renders the HUD and arena for a snapshot onto s.
func (ar ArenaRenderer) Draw(s *core.Screen, snap crossing.Snapshot, banner string) {
	s.Clear()
	box := ar.Layout(s.Width(), s.Height())
	s.DrawBox(box, core.ColorGray)
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)

	for _, e := range snap.Entities() {
		g, ok := glyphs[e.Kind]
		if !ok {
			continue
		}
		// Asteroids waiting left of the arena are not drawn on its wall
		if e.Kind == crossing.KindAsteroid && !inner.Contains(ar.cell(e.Pos, inner)) {
			continue
		}
		x, y := ar.Project(e.Pos, inner)
		if e.Kind == crossing.KindDockSite {
			s.DrawHLine(inner.X, y, inner.W, g.r, g.color)
			continue
		}
		s.SetColor(x, y, g.r, g.color)
	}

	ar.drawHUD(s, snap, box)
	if banner != "" {
		s.DrawTextCentered(box.Y+box.H/2, " "+banner+" ", core.ColorBrightYellow)
	}
}

func (ar ArenaRenderer) drawHUD(s *core.Screen, snap crossing.Snapshot, box core.Rect) {
	p1 := fmt.Sprintf("P1 %d L%d", snap.Scores[0], snap.Levels[0])
	p2 := fmt.Sprintf("P2 %d L%d", snap.Scores[1], snap.Levels[1])

	p1Color, p2Color := core.ColorGray, core.ColorGray
	switch snap.Phase.TurnOwner() {
	case core.Player1:
		p1Color = core.ColorGreen
	case core.Player2:
		p2Color = core.ColorBrightCyan
	}

	s.DrawTextColor(box.X, 0, p1, p1Color)
	s.DrawTextColor(box.Right()-len([]rune(p2)), 0, p2, p2Color)
	s.DrawTextCentered(0, fmt.Sprintf("%ds", snap.TurnSeconds), core.ColorWhite)
}
