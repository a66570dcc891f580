package crossing

import "github.com/vovakirdan/asteroid-crossing/internal/core"

// Event is something the presentation layer may react to.
type Event interface {
	roundEvent()
}

// ExplosionEvent is raised when the active player hits a hazard.
type ExplosionEvent struct {
	Player core.PlayerID
	Pos    core.Vec
	Hazard HazardKind
}

func (ExplosionEvent) roundEvent() {}

// ScoreEvent is raised for every point award.
type ScoreEvent struct {
	Player core.PlayerID
	Points int
	Reason ScoreReason
	Total  int // Running total after the award
}

func (ScoreEvent) roundEvent() {}

// MilestoneEvent is raised when a running total passes a multiple of MilestoneInterval.
type MilestoneEvent struct {
	Player core.PlayerID
	Score  int // The milestone reached
}

func (MilestoneEvent) roundEvent() {}

// GoalEvent is raised when a player reaches its goal edge.
type GoalEvent struct {
	Player  core.PlayerID
	Bonus   int
	Seconds int64 // Whole seconds the turn took
}

func (GoalEvent) roundEvent() {}

// TurnChangedEvent is raised when control passes to another player.
type TurnChangedEvent struct {
	Player core.PlayerID // Newly active player
}

func (TurnChangedEvent) roundEvent() {}

// RoundOverEvent is raised once when the round ends.
type RoundOverEvent struct {
	Winner core.PlayerID // PlayerNone when both or neither succeeded
}

func (RoundOverEvent) roundEvent() {}
