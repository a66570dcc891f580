package core

// PlayerID identifies one of the two player slots.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1             // Starts at the bottom, travels up (arrow keys)
	Player2             // Starts at the top, travels down (WASD)
)

// String returns a short label for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// Index returns the zero-based slot index (0 for Player1, 1 for Player2).
// Only valid for Player1 and Player2.
func (p PlayerID) Index() int {
	return int(p) - 1
}

// Other returns the opposing player.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return PlayerNone
	}
}

// Intent is a directional movement intent, abstracted from physical keys.
type Intent int

const (
	IntentUp Intent = iota
	IntentDown
	IntentLeft
	IntentRight
	intentCount
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "Up"
	case IntentDown:
		return "Down"
	case IntentLeft:
		return "Left"
	case IntentRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// IntentFrame holds which intents are currently pressed for both players
// during one simulation tick.
type IntentFrame struct {
	held [2][intentCount]bool
}

// NewIntentFrame creates a frame with nothing pressed.
func NewIntentFrame() IntentFrame {
	return IntentFrame{}
}

// Set marks an intent as pressed or released for a player.
// Unknown players or intents are ignored.
func (f *IntentFrame) Set(p PlayerID, i Intent, pressed bool) {
	if !validPlayer(p) || i < 0 || i >= intentCount {
		return
	}
	f.held[p.Index()][i] = pressed
}

// Press is Set(p, i, true).
func (f *IntentFrame) Press(p PlayerID, i Intent) {
	f.Set(p, i, true)
}

// Has returns true if the intent is pressed for the player.
func (f IntentFrame) Has(p PlayerID, i Intent) bool {
	if !validPlayer(p) || i < 0 || i >= intentCount {
		return false
	}
	return f.held[p.Index()][i]
}

// Axis returns the resolved direction for a player on each axis as -1, 0 or 1.
// Opposing intents on the same axis cancel out.
func (f IntentFrame) Axis(p PlayerID) (dx, dy float64) {
	if f.Has(p, IntentLeft) {
		dx--
	}
	if f.Has(p, IntentRight) {
		dx++
	}
	if f.Has(p, IntentUp) {
		dy--
	}
	if f.Has(p, IntentDown) {
		dy++
	}
	return dx, dy
}

// Clear releases every intent for both players.
func (f *IntentFrame) Clear() {
	f.held = [2][intentCount]bool{}
}

func validPlayer(p PlayerID) bool {
	return p == Player1 || p == Player2
}
