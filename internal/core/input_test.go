package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentFrameSetHas(t *testing.T) {
	f := NewIntentFrame()

	f.Press(Player1, IntentUp)
	assert.True(t, f.Has(Player1, IntentUp))
	assert.False(t, f.Has(Player2, IntentUp), "players must not share intents")

	f.Set(Player1, IntentUp, false)
	assert.False(t, f.Has(Player1, IntentUp))

	// Invalid input is ignored rather than panicking
	f.Press(PlayerNone, IntentUp)
	f.Press(Player1, Intent(42))
	assert.False(t, f.Has(PlayerNone, IntentUp))
	assert.False(t, f.Has(Player1, Intent(42)))
}

func TestIntentFrameAxis(t *testing.T) {
	tests := []struct {
		name   string
		press  []Intent
		dx, dy float64
	}{
		{"idle", nil, 0, 0},
		{"up", []Intent{IntentUp}, 0, -1},
		{"down right", []Intent{IntentDown, IntentRight}, 1, 1},
		{"left", []Intent{IntentLeft}, -1, 0},
		{"opposites cancel", []Intent{IntentLeft, IntentRight, IntentUp, IntentDown}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewIntentFrame()
			for _, i := range tc.press {
				f.Press(Player2, i)
			}
			dx, dy := f.Axis(Player2)
			assert.Equal(t, tc.dx, dx)
			assert.Equal(t, tc.dy, dy)
		})
	}
}

func TestIntentFrameClear(t *testing.T) {
	f := NewIntentFrame()
	f.Press(Player1, IntentLeft)
	f.Press(Player2, IntentDown)

	f.Clear()

	assert.False(t, f.Has(Player1, IntentLeft))
	assert.False(t, f.Has(Player2, IntentDown))
}

func TestPlayerIDHelpers(t *testing.T) {
	assert.Equal(t, Player2, Player1.Other())
	assert.Equal(t, Player1, Player2.Other())
	assert.Equal(t, PlayerNone, PlayerNone.Other())
	assert.Equal(t, 0, Player1.Index())
	assert.Equal(t, 1, Player2.Index())
	assert.Equal(t, "P1", Player1.String())
	assert.Equal(t, "none", PlayerNone.String())
}
