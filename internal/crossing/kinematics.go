package crossing

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
)

// Advance moves the player by Vel*dt and clamps it to the arena.
func (p *Player) Advance(dt int64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(float64(dt)))
	p.Pos.X = core.ClampF(p.Pos.X, 0, PlayerMaxX)
	p.Pos.Y = core.ClampF(p.Pos.Y, 0, PlayerMaxY)
}

// Advance moves the asteroid along its row. Asteroids travel at a third of
// their nominal speed in whole units per frame; past the right edge they
// re-enter at a random offset in [-AsteroidSpread, 0).
func (a *Asteroid) Advance(dt int64, rng *rand.Rand) {
	a.Pos.X += math.Floor(a.VelX * float64(dt) / 3)
	if a.Pos.X > AsteroidWrapX {
		a.Pos.X = -float64(1 + rng.Intn(AsteroidSpread))
	}
}
