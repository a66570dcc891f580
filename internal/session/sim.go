package session

import (
	"math/rand"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
)

// ForwardSource presses each player's direction of travel every frame.
func ForwardSource(dt int64) crossing.FrameSource {
	f := core.NewIntentFrame()
	f.Press(core.Player1, core.IntentUp)
	f.Press(core.Player2, core.IntentDown)
	return crossing.FrameSourceFunc(func() (core.IntentFrame, int64) {
		return f, dt
	})
}

// RandomSource drives both players toward their goals while dodging
// sideways at random. It is used for demo and smoke runs.
func RandomSource(rng *rand.Rand, dt int64) crossing.FrameSource {
	dodges := []core.Intent{core.IntentLeft, core.IntentRight}
	var dodge [2]int // Index into dodges, or -1 to go straight
	var hold [2]int
	return crossing.FrameSourceFunc(func() (core.IntentFrame, int64) {
		f := core.NewIntentFrame()
		for i, id := range []core.PlayerID{core.Player1, core.Player2} {
			if hold[i] <= 0 {
				dodge[i] = rng.Intn(len(dodges)+1) - 1
				hold[i] = 5 + rng.Intn(20)
			}
			hold[i]--

			forward := core.IntentUp
			if id == core.Player2 {
				forward = core.IntentDown
			}
			// Pause now and then so asteroids can pass
			if rng.Intn(4) != 0 {
				f.Press(id, forward)
			}
			if dodge[i] >= 0 {
				f.Press(id, dodges[dodge[i]])
			}
		}
		return f, dt
	})
}
