package tui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/core"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
)

func TestArenaLayout(t *testing.T) {
	ar := NewArenaRenderer(400, 750)

	box := ar.Layout(80, 23)
	assert.Equal(t, core.NewRect(28, 1, 23, 22), box)

	// Narrow terminals clip the box to the available width
	narrow := ar.Layout(10, 40)
	assert.Equal(t, 10, narrow.W)
	assert.Equal(t, 0, narrow.X)
}

func TestArenaProject(t *testing.T) {
	ar := NewArenaRenderer(400, 750)
	area := core.NewRect(10, 2, 20, 30)

	x, y := ar.Project(core.V(0, 0), area)
	assert.Equal(t, 10, x)
	assert.Equal(t, 2, y)

	x, y = ar.Project(core.V(200, 375), area)
	assert.Equal(t, 20, x)
	assert.Equal(t, 17, y)

	// Positions on or past the far edge stay inside the area
	x, y = ar.Project(core.V(400, 750), area)
	assert.Equal(t, 29, x)
	assert.Equal(t, 31, y)

	x, y = ar.Project(core.V(-50, -10), area)
	assert.Equal(t, 10, x)
	assert.Equal(t, 2, y)
}

func TestArenaDraw(t *testing.T) {
	ar := NewArenaRenderer(400, 750)
	params := crossing.RoundParams{
		Levels:         [2]int{1, 3},
		Scores:         [2]int{120, 45},
		BlackHoleCount: 4,
		PlayerVelocity: core.V(0.2, 0.2),
		Difficulty:     config.Difficulty{Exponent: 0.5},
	}
	snap := crossing.NewRound(params, rand.New(rand.NewSource(1))).Snapshot()

	s := core.NewScreen(80, 23)
	ar.Draw(s, snap, "")

	box := ar.Layout(80, 23)
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)

	x, y := ar.Project(crossing.P1Start, inner)
	assert.Equal(t, '▲', s.Get(x, y))
	x, y = ar.Project(crossing.P2Start, inner)
	assert.Equal(t, '▼', s.Get(x, y))

	assert.Equal(t, '┌', s.Get(box.X, box.Y))
	assert.Contains(t, s.Row(0), "P1 120 L1")
	assert.Contains(t, s.Row(0), "P2 45 L3")
	assert.Contains(t, s.Row(0), "0s")
}

func TestArenaDrawSkipsAsteroidsOutsideArena(t *testing.T) {
	ar := NewArenaRenderer(400, 750)
	snap := crossing.Snapshot{
		Levels: [2]int{1, 1},
		Asteroids: []crossing.Asteroid{
			{Pos: core.V(-30, 70)},
			{Pos: core.V(200, 350)},
		},
	}

	s := core.NewScreen(80, 23)
	ar.Draw(s, snap, "")

	box := ar.Layout(80, 23)
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)

	x, y := ar.Project(core.V(-30, 70), inner)
	assert.Equal(t, inner.X, x)
	assert.NotEqual(t, 'O', s.Get(x, y))

	x, y = ar.Project(core.V(200, 350), inner)
	assert.Equal(t, 'O', s.Get(x, y))
}

func TestArenaDrawBanner(t *testing.T) {
	ar := NewArenaRenderer(400, 750)
	s := core.NewScreen(80, 23)
	ar.Draw(s, crossing.Snapshot{Levels: [2]int{1, 1}}, "P1 exploded!")

	box := ar.Layout(80, 23)
	assert.Contains(t, s.Row(box.Y+box.H/2), "P1 exploded!")
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "asteroid", core.ColorOrange)
	s.DrawText(0, 1, "crossing")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, out, "asteroid")
	assert.Contains(t, lines[1], "crossing")
}
