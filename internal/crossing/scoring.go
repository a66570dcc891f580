package crossing

import "github.com/vovakirdan/asteroid-crossing/internal/core"

// Point awards.
const (
	AsteroidPoints    = 10
	BlackHolePoints   = 5
	GoalBonusBase     = 1000
	MilestoneInterval = 500 // A MilestoneEvent fires every time a total passes a multiple of this
)

// Crossing margins: how far past a hazard's row a player must be.
// Player 1's black hole margin is 40 while player 2's is 50; the two
// travel directions have always scored this way.
const (
	AsteroidCrossMargin = 50.0
	P1BlackHoleMargin   = 40.0
	P2BlackHoleMargin   = 50.0
)

// ScoreReason says why points were awarded.
type ScoreReason int

const (
	ReasonAsteroidCrossed ScoreReason = iota
	ReasonBlackHoleCrossed
	ReasonGoal
)

func (r ScoreReason) String() string {
	switch r {
	case ReasonAsteroidCrossed:
		return "asteroid"
	case ReasonBlackHoleCrossed:
		return "black_hole"
	case ReasonGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// passedRow reports whether a player at y is more than margin past row in
// its direction of travel (up for player 1, down for player 2).
func passedRow(p core.PlayerID, y, row, margin float64) bool {
	if p == core.Player1 {
		return y < row-margin
	}
	return y > row+margin
}

// blackHoleMargin returns the black hole crossing margin for a player.
func blackHoleMargin(p core.PlayerID) float64 {
	if p == core.Player1 {
		return P1BlackHoleMargin
	}
	return P2BlackHoleMargin
}

// ReachedGoal reports whether a player at y is on its goal edge.
func ReachedGoal(p core.PlayerID, y float64) bool {
	switch p {
	case core.Player1:
		return y <= P1GoalY
	case core.Player2:
		return y >= P2GoalY
	default:
		return false
	}
}

// GoalBonus returns the completion bonus for a turn that took seconds whole seconds.
func GoalBonus(seconds int64) int {
	if seconds < 0 {
		seconds = 0
	}
	return GoalBonusBase / int(seconds+1)
}

// scoreCrossings awards every hazard the player has newly passed.
// Each flag flips at most once, so each hazard pays at most once per round.
func (r *Round) scoreCrossings(id core.PlayerID) {
	y := r.players[id.Index()].Pos.Y

	for i := range r.asteroids {
		a := &r.asteroids[i]
		if !a.Crossed.Has(id) && passedRow(id, y, a.Pos.Y, AsteroidCrossMargin) {
			a.Crossed.mark(id)
			r.award(id, AsteroidPoints, ReasonAsteroidCrossed)
		}
	}

	margin := blackHoleMargin(id)
	for i := range r.blackHoles {
		h := &r.blackHoles[i]
		if !h.Crossed.Has(id) && passedRow(id, y, h.Pos.Y, margin) {
			h.Crossed.mark(id)
			r.award(id, BlackHolePoints, ReasonBlackHoleCrossed)
		}
	}
}

// award adds points to a player's running total and emits score events.
func (r *Round) award(id core.PlayerID, points int, reason ScoreReason) {
	if points <= 0 {
		return
	}
	idx := id.Index()
	before := r.scores[idx]
	r.scores[idx] += points

	r.emit(ScoreEvent{Player: id, Points: points, Reason: reason, Total: r.scores[idx]})

	if before/MilestoneInterval < r.scores[idx]/MilestoneInterval {
		r.emit(MilestoneEvent{Player: id, Score: r.scores[idx] / MilestoneInterval * MilestoneInterval})
	}
}
