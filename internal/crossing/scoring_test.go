package crossing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
)

func TestGoalBonus(t *testing.T) {
	tests := []struct {
		seconds int64
		want    int
	}{
		{0, 1000},
		{1, 500},
		{2, 333},
		{9, 100},
		{999, 1},
		{-5, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GoalBonus(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestReachedGoal(t *testing.T) {
	assert.True(t, ReachedGoal(core.Player1, 10))
	assert.False(t, ReachedGoal(core.Player1, 10.5))
	assert.True(t, ReachedGoal(core.Player2, 710))
	assert.False(t, ReachedGoal(core.Player2, 709))
	assert.False(t, ReachedGoal(core.PlayerNone, 0))
}

func TestAsteroidCrossingAwardsOnce(t *testing.T) {
	r := emptyRound(t)
	r.asteroids = []Asteroid{{Pos: core.V(0, 630)}}

	r.players[0].Pos.Y = 580 // not strictly past the margin yet
	r.scoreCrossings(core.Player1)
	assert.Equal(t, 0, r.Scores()[0])

	r.players[0].Pos.Y = 579
	r.scoreCrossings(core.Player1)
	r.scoreCrossings(core.Player1)
	assert.Equal(t, AsteroidPoints, r.Scores()[0])
	assert.True(t, r.asteroids[0].Crossed.Has(core.Player1))
	assert.False(t, r.asteroids[0].Crossed.Has(core.Player2))

	events := collectEvents[ScoreEvent](r.events)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonAsteroidCrossed, events[0].Reason)
	assert.Equal(t, AsteroidPoints, events[0].Total)
}

func TestBlackHoleMarginsDifferPerPlayer(t *testing.T) {
	r := emptyRound(t)
	r.blackHoles = []BlackHole{{Pos: core.V(0, 280)}}

	r.players[0].Pos.Y = 239
	r.scoreCrossings(core.Player1)
	assert.Equal(t, BlackHolePoints, r.Scores()[0])

	r.players[1].Pos.Y = 325
	r.scoreCrossings(core.Player2)
	assert.Equal(t, 0, r.Scores()[1], "player 2 needs 50 units of clearance")

	r.players[1].Pos.Y = 331
	r.scoreCrossings(core.Player2)
	assert.Equal(t, BlackHolePoints, r.Scores()[1])
}

func TestMilestoneEvent(t *testing.T) {
	r := emptyRound(t)
	r.scores[1] = 495

	r.award(core.Player2, 10, ReasonAsteroidCrossed)
	r.award(core.Player2, 10, ReasonAsteroidCrossed)

	milestones := collectEvents[MilestoneEvent](r.events)
	require.Len(t, milestones, 1)
	assert.Equal(t, MilestoneEvent{Player: core.Player2, Score: 500}, milestones[0])
	assert.Equal(t, 515, r.Scores()[1])
}

func TestAwardIgnoresNonPositive(t *testing.T) {
	r := emptyRound(t)
	r.award(core.Player1, 0, ReasonGoal)
	r.award(core.Player1, -10, ReasonGoal)
	assert.Equal(t, 0, r.Scores()[0])
	assert.Empty(t, r.events)
}
