package crossing

import "github.com/vovakirdan/asteroid-crossing/internal/core"

// StunDuration is how long, in simulated milliseconds, a player shows the
// explosion before the turn is handed off. The world is frozen meanwhile.
const StunDuration int64 = 200

// Phase is the turn/round state.
type Phase int

const (
	PhaseP1Turn Phase = iota
	PhaseP1Stunned
	PhaseP2Turn
	PhaseP2Stunned
	PhaseRoundOver
)

func (ph Phase) String() string {
	switch ph {
	case PhaseP1Turn:
		return "P1_TURN"
	case PhaseP1Stunned:
		return "P1_STUNNED"
	case PhaseP2Turn:
		return "P2_TURN"
	case PhaseP2Stunned:
		return "P2_STUNNED"
	case PhaseRoundOver:
		return "ROUND_OVER"
	default:
		return "UNKNOWN"
	}
}

// ActivePlayer returns who may move in this phase, or PlayerNone.
func (ph Phase) ActivePlayer() core.PlayerID {
	switch ph {
	case PhaseP1Turn:
		return core.Player1
	case PhaseP2Turn:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

// TurnOwner returns whose turn it is, including while stunned.
func (ph Phase) TurnOwner() core.PlayerID {
	switch ph {
	case PhaseP1Turn, PhaseP1Stunned:
		return core.Player1
	case PhaseP2Turn, PhaseP2Stunned:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

// Stunned reports whether the phase is an explosion pause.
func (ph Phase) Stunned() bool {
	return ph == PhaseP1Stunned || ph == PhaseP2Stunned
}

func stunnedPhase(id core.PlayerID) Phase {
	if id == core.Player1 {
		return PhaseP1Stunned
	}
	return PhaseP2Stunned
}

// RoundWinner decides a round's winner from the success flags.
func RoundWinner(p1Success, p2Success bool) core.PlayerID {
	switch {
	case p1Success && !p2Success:
		return core.Player1
	case p2Success && !p1Success:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

// collide handles the active player hitting a hazard: explosion, no success,
// then a stun before the hand-off.
func (r *Round) collide(id core.PlayerID, hazard HazardKind) {
	p := &r.players[id.Index()]
	p.Active = false
	p.Exploded = true
	p.Vel = core.Vec{}

	r.phase = stunnedPhase(id)
	r.stunLeft = StunDuration

	r.emit(ExplosionEvent{Player: id, Pos: p.Pos, Hazard: hazard})
	r.logger.Debug("player exploded", "player", id, "x", p.Pos.X, "y", p.Pos.Y, "tick", r.tick)
}

// reachGoal handles a player arriving at its goal edge.
func (r *Round) reachGoal(id core.PlayerID) {
	p := &r.players[id.Index()]
	p.Active = false
	p.Success = true
	p.Vel = core.Vec{}
	if id == core.Player1 {
		p.Pos.Y = P1ReturnY
	}

	seconds := r.TurnSeconds()
	bonus := GoalBonus(seconds)
	r.emit(GoalEvent{Player: id, Bonus: bonus, Seconds: seconds})
	r.award(id, bonus, ReasonGoal)
	r.logger.Debug("player reached goal", "player", id, "seconds", seconds, "bonus", bonus)

	r.endTurn(id)
}

// advanceStun counts down an explosion pause and hands off when it expires.
func (r *Round) advanceStun(dt int64) {
	r.stunLeft -= dt
	if r.stunLeft > 0 {
		return
	}
	r.stunLeft = 0
	id := r.phase.TurnOwner()
	r.players[id.Index()].Exploded = false
	r.endTurn(id)
}

// endTurn passes control from id to the next player, or ends the round.
func (r *Round) endTurn(id core.PlayerID) {
	r.turnElapsed = 0

	if id == core.Player1 {
		next := id.Other()
		r.phase = PhaseP2Turn
		r.players[next.Index()].Active = true
		r.emit(TurnChangedEvent{Player: next})
		return
	}

	r.phase = PhaseRoundOver
	winner := RoundWinner(r.players[0].Success, r.players[1].Success)
	r.emit(RoundOverEvent{Winner: winner})
	r.logger.Debug("round over", "winner", winner, "p1_score", r.scores[0], "p2_score", r.scores[1])
}
