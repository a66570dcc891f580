package crossing

import (
	"context"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/core"
)

// RoundParams configures a single round.
type RoundParams struct {
	Levels         [2]int // Current level per player, starting at 1
	Scores         [2]int // Running totals carried in from earlier rounds
	BlackHoleCount int
	PlayerVelocity core.Vec // Per-axis speed magnitude, units per millisecond
	Difficulty     config.Difficulty
	Logger         *log.Logger // Optional
}

// ParamsFromConfig builds round parameters from the game configuration.
func ParamsFromConfig(cfg config.Config, levels, scores [2]int) RoundParams {
	return RoundParams{
		Levels:         levels,
		Scores:         scores,
		BlackHoleCount: cfg.Info.BlackHoleCount,
		PlayerVelocity: core.V(cfg.Info.PlayerVelocityX, cfg.Info.PlayerVelocityY),
		Difficulty:     cfg.Difficulty(),
	}
}

// RoundResult is what a finished round reports to the session.
type RoundResult struct {
	Levels  [2]int // Levels after the round: +1 for each player who succeeded
	Scores  [2]int // Running totals after the round
	Success [2]bool
	Winner  core.PlayerID
	Ticks   uint64
	Elapsed int64 // Simulated milliseconds
}

// StepResult is returned by Round.Step after each simulation tick.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
	Done     bool // Round reached PhaseRoundOver
}

// Round is one complete turn-by-turn contest. It is not safe for concurrent use;
// the frame loop owns it.
type Round struct {
	params RoundParams
	rng    *rand.Rand
	logger *log.Logger

	players    [2]Player
	docks      []DockSite
	blackHoles []BlackHole
	asteroids  []Asteroid

	phase       Phase
	stunLeft    int64
	turnElapsed int64
	elapsed     int64
	tick        uint64
	scores      [2]int

	events []Event
}

// NewRound creates a round with freshly placed entities. Player 1 moves first.
func NewRound(params RoundParams, rng *rand.Rand) *Round {
	for i := range params.Levels {
		if params.Levels[i] < 1 {
			params.Levels[i] = 1
		}
	}

	logger := params.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Round{
		params:     params,
		rng:        rng,
		logger:     logger,
		players:    [2]Player{NewPlayer(core.Player1), NewPlayer(core.Player2)},
		docks:      newDockSites(),
		blackHoles: newBlackHoles(params.BlackHoleCount, rng),
		asteroids:  newAsteroids(rng),
		phase:      PhaseP1Turn,
		scores:     params.Scores,
	}
	r.players[0].Active = true
	return r
}

// Step advances the simulation by dt milliseconds using the given intents.
//
// Only the active player's intents are applied. Asteroid speed follows the
// active player's level. Scoring and collisions are evaluated for the active
// player, then the goal rule for each player whose turn is live.
func (r *Round) Step(in core.IntentFrame, dt int64) StepResult {
	r.events = nil
	if dt < 0 {
		dt = 0
	}

	switch {
	case r.phase == PhaseRoundOver:
		return r.stepResult()
	case r.phase.Stunned():
		r.elapsed += dt
		r.advanceStun(dt)
		return r.stepResult()
	}

	r.tick++
	r.elapsed += dt
	r.turnElapsed += dt

	active := r.phase.ActivePlayer()
	r.applyIntents(in, active)

	speed := r.params.Difficulty.AsteroidSpeed(r.params.Levels[active.Index()])
	for i := range r.asteroids {
		r.asteroids[i].VelX = speed
	}

	for i := range r.players {
		r.players[i].Advance(dt)
	}
	for i := range r.asteroids {
		r.asteroids[i].Advance(dt, r.rng)
	}

	r.checkInvariants()

	r.scoreCrossings(active)

	pos := r.players[active.Index()].Pos
	switch {
	case PlayerHitsAny(pos, r.blackHoles, HazardBlackHole):
		r.collide(active, HazardBlackHole)
	case PlayerHitsAny(pos, r.asteroids, HazardAsteroid):
		r.collide(active, HazardAsteroid)
	}

	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		p := r.players[id.Index()]
		if p.Active && r.phase.ActivePlayer() == id && ReachedGoal(id, p.Pos.Y) {
			r.reachGoal(id)
		}
	}

	return r.stepResult()
}

// applyIntents sets the active player's velocity from its intents and
// zeroes the inactive player's.
func (r *Round) applyIntents(in core.IntentFrame, active core.PlayerID) {
	for i := range r.players {
		p := &r.players[i]
		if p.ID != active {
			p.Vel = core.Vec{}
			continue
		}
		dx, dy := in.Axis(p.ID)
		p.Vel = core.V(dx*r.params.PlayerVelocity.X, dy*r.params.PlayerVelocity.Y)
	}
}

func (r *Round) emit(e Event) {
	r.events = append(r.events, e)
}

func (r *Round) stepResult() StepResult {
	return StepResult{
		Snapshot: r.Snapshot(),
		Events:   r.events,
		Done:     r.phase == PhaseRoundOver,
	}
}

// Phase returns the current turn/round state.
func (r *Round) Phase() Phase {
	return r.phase
}

// Done reports whether the round is over.
func (r *Round) Done() bool {
	return r.phase == PhaseRoundOver
}

// TurnSeconds returns whole seconds elapsed in the current turn.
func (r *Round) TurnSeconds() int64 {
	return r.turnElapsed / 1000
}

// Player returns a copy of a player's state.
func (r *Round) Player(id core.PlayerID) Player {
	return r.players[id.Index()]
}

// Scores returns the running totals.
func (r *Round) Scores() [2]int {
	return r.scores
}

// Result returns the round outcome. Levels are only advanced once the round
// is over; calling it earlier reports the levels the round started with.
func (r *Round) Result() RoundResult {
	res := RoundResult{
		Levels:  r.params.Levels,
		Scores:  r.scores,
		Success: [2]bool{r.players[0].Success, r.players[1].Success},
		Ticks:   r.tick,
		Elapsed: r.elapsed,
	}
	if r.phase != PhaseRoundOver {
		return res
	}
	for i := range res.Levels {
		if res.Success[i] {
			res.Levels[i]++
		}
	}
	res.Winner = RoundWinner(res.Success[0], res.Success[1])
	return res
}

// FrameSource supplies intents and elapsed milliseconds for each frame.
type FrameSource interface {
	Next() (core.IntentFrame, int64)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func() (core.IntentFrame, int64)

// Next implements FrameSource.
func (f FrameSourceFunc) Next() (core.IntentFrame, int64) {
	return f()
}

// Run drives the round from src until it is over or ctx is cancelled.
// onStep, if not nil, sees every step result.
func (r *Round) Run(ctx context.Context, src FrameSource, onStep func(StepResult)) (RoundResult, error) {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return r.Result(), err
		}
		in, dt := src.Next()
		res := r.Step(in, dt)
		if onStep != nil {
			onStep(res)
		}
	}
	return r.Result(), nil
}
