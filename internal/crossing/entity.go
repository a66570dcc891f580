// Package crossing implements the round simulation for Asteroid Crossing:
// two ships take turns crossing a vertical arena past sweeping asteroids and
// stationary black holes. The package is pure game logic; input arrives as
// intents plus an elapsed-time delta, output is a snapshot and a list of events.
package crossing

import (
	"math/rand"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
)

// Arena geometry. Coordinates are arena units with y growing downwards.
const (
	PlayerMaxX = 360.0 // Players clamp to [0, PlayerMaxX]
	PlayerMaxY = 713.0 // Players clamp to [0, PlayerMaxY]

	AsteroidWrapX  = 400.0 // Asteroids past this x re-enter from the left
	AsteroidSpread = 100   // Re-entry offset is drawn from [-AsteroidSpread, 0)
	BlackHoleMaxX  = 330   // Black hole x is drawn from [0, BlackHoleMaxX]

	P1GoalY   = 10.0  // Player 1 wins the turn at y <= P1GoalY
	P2GoalY   = 710.0 // Player 2 wins the turn at y >= P2GoalY
	P1ReturnY = 705.0 // Player 1 is parked here after reaching the goal
)

// Start positions per player slot.
var (
	P1Start = core.V(155, 705)
	P2Start = core.V(205, 5)
)

// Lane rows.
var (
	DockLanes      = []float64{0, 140, 280, 420, 560, 700}
	BlackHoleLanes = []float64{140, 280, 420, 560}
	AsteroidRows   = []float64{70, 210, 350, 490, 630}
)

// lastAsteroidStartX is the fixed entry offset of the bottom asteroid row.
const lastAsteroidStartX = -10.0

// Kind tags an entity for the renderer.
type Kind int

const (
	KindPlayer1 Kind = iota
	KindPlayer2
	KindDockSite
	KindBlackHole
	KindAsteroid
	KindExplosion
)

func (k Kind) String() string {
	switch k {
	case KindPlayer1:
		return "player1"
	case KindPlayer2:
		return "player2"
	case KindDockSite:
		return "dock"
	case KindBlackHole:
		return "black_hole"
	case KindAsteroid:
		return "asteroid"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Entity is the renderable view of any arena object.
type Entity struct {
	Kind Kind
	Pos  core.Vec
}

// CrossFlags records, per player, whether a hazard has been crossed this round.
type CrossFlags [2]bool

// Has reports whether the player has crossed.
func (f CrossFlags) Has(p core.PlayerID) bool {
	return f.valid(p) && f[p.Index()]
}

func (CrossFlags) valid(p core.PlayerID) bool {
	return p == core.Player1 || p == core.Player2
}

// mark sets the player's flag and reports whether it was newly set.
func (f *CrossFlags) mark(p core.PlayerID) bool {
	if !f.valid(p) || f[p.Index()] {
		return false
	}
	f[p.Index()] = true
	return true
}

// Player is one of the two ships.
type Player struct {
	ID       core.PlayerID
	Pos      core.Vec
	Vel      core.Vec // Units per millisecond
	Active   bool     // May currently move and score
	Success  bool     // Reached the goal this round
	Exploded bool     // Showing the explosion while stunned
}

// NewPlayer creates a player at its slot's start position.
func NewPlayer(id core.PlayerID) Player {
	p := Player{ID: id}
	switch id {
	case core.Player1:
		p.Pos = P1Start
	case core.Player2:
		p.Pos = P2Start
	}
	return p
}

// Kind returns the render tag for the player's current look.
func (p Player) Kind() Kind {
	if p.Exploded {
		return KindExplosion
	}
	if p.ID == core.Player2 {
		return KindPlayer2
	}
	return KindPlayer1
}

// Position implements Positioned.
func (p Player) Position() core.Vec {
	return p.Pos
}

// DockSite is a decorative lane marker.
type DockSite struct {
	Pos core.Vec
}

// BlackHole is a stationary hazard sitting on a dock lane.
type BlackHole struct {
	Pos     core.Vec
	Crossed CrossFlags
}

// Position implements Positioned.
func (h BlackHole) Position() core.Vec {
	return h.Pos
}

// Asteroid sweeps left to right along a fixed row.
type Asteroid struct {
	Pos     core.Vec
	VelX    float64
	Crossed CrossFlags
}

// Position implements Positioned.
func (a Asteroid) Position() core.Vec {
	return a.Pos
}

// newDockSites lays out one dock per lane.
func newDockSites() []DockSite {
	docks := make([]DockSite, len(DockLanes))
	for i, y := range DockLanes {
		docks[i] = DockSite{Pos: core.V(0, y)}
	}
	return docks
}

// newBlackHoles places count black holes at random x on random interior lanes.
func newBlackHoles(count int, rng *rand.Rand) []BlackHole {
	holes := make([]BlackHole, 0, max(count, 0))
	for i := 0; i < count; i++ {
		lane := BlackHoleLanes[rng.Intn(len(BlackHoleLanes))]
		holes = append(holes, BlackHole{Pos: core.V(float64(rng.Intn(BlackHoleMaxX+1)), lane)})
	}
	return holes
}

// newAsteroids puts one asteroid on every row just left of the arena.
func newAsteroids(rng *rand.Rand) []Asteroid {
	asteroids := make([]Asteroid, len(AsteroidRows))
	last := len(AsteroidRows) - 1
	for i, y := range AsteroidRows {
		x := -float64(rng.Intn(AsteroidSpread + 1))
		if i == last {
			x = lastAsteroidStartX
		}
		asteroids[i] = Asteroid{Pos: core.V(x, y)}
	}
	return asteroids
}
