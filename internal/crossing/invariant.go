package crossing

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a programming defect in the simulation,
// such as both players being active at once.
var ErrInvariantViolation = errors.New("crossing: invariant violation")

// checkInvariants fails fast in debug builds and logs otherwise.
func (r *Round) checkInvariants() {
	if !(r.players[0].Active && r.players[1].Active) {
		return
	}
	err := fmt.Errorf("%w: both players active at tick %d in %s", ErrInvariantViolation, r.tick, r.phase)
	if debugInvariants {
		panic(err)
	}
	r.logger.Error("simulation invariant violated", "err", err)
}
