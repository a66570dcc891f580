package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asteroid-crossing/internal/core"
)

// Terminals report key repeats but no releases, so a held key is inferred
// from its event stream. The first event opens a DefaultRepeatDelay window
// that bridges the pause before auto-repeat starts; once repeats arrive,
// each one extends the hold by DefaultHoldWindow.
const (
	DefaultRepeatDelay = 500 * time.Millisecond
	DefaultHoldWindow  = 150 * time.Millisecond
)

// KeyMap defines the key bindings for both players and the page screens.
type KeyMap struct {
	P1Up    key.Binding
	P1Down  key.Binding
	P1Left  key.Binding
	P1Right key.Binding

	P2Up    key.Binding
	P2Down  key.Binding
	P2Left  key.Binding
	P2Right key.Binding

	Advance  key.Binding
	Quit     key.Binding // Works on every screen
	QuitPage key.Binding // Only on screens without movement keys
}

// DefaultKeyMap returns the default bindings: arrows for player 1, WASD for player 2.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P1 up")),
		P1Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P1 down")),
		P1Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P1 left")),
		P1Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P1 right")),

		P2Up:    key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("w", "P2 up")),
		P2Down:  key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "P2 down")),
		P2Left:  key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "P2 left")),
		P2Right: key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "P2 right")),

		Advance:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "continue")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		QuitPage: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// Intent maps a key message to a player's movement intent.
func (k KeyMap) Intent(msg tea.KeyMsg) (core.PlayerID, core.Intent, bool) {
	switch {
	case key.Matches(msg, k.P1Up):
		return core.Player1, core.IntentUp, true
	case key.Matches(msg, k.P1Down):
		return core.Player1, core.IntentDown, true
	case key.Matches(msg, k.P1Left):
		return core.Player1, core.IntentLeft, true
	case key.Matches(msg, k.P1Right):
		return core.Player1, core.IntentRight, true
	case key.Matches(msg, k.P2Up):
		return core.Player2, core.IntentUp, true
	case key.Matches(msg, k.P2Down):
		return core.Player2, core.IntentDown, true
	case key.Matches(msg, k.P2Left):
		return core.Player2, core.IntentLeft, true
	case key.Matches(msg, k.P2Right):
		return core.Player2, core.IntentRight, true
	}
	return core.PlayerNone, 0, false
}

// pageKeys is the help footer for title and result pages.
type pageKeys KeyMap

func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.QuitPage}
}

func (k pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// playKeys is the help footer while a round runs.
type playKeys KeyMap

func (k playKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Up, k.P1Down, k.P1Left, k.P1Right, k.P2Up, k.P2Down, k.P2Left, k.P2Right, k.Quit}
}

func (k playKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Down, k.P1Left, k.P1Right},
		{k.P2Up, k.P2Down, k.P2Left, k.P2Right},
		{k.Quit},
	}
}

const intentsPerPlayer = 4

// HoldTracker turns discrete key events into held intents: an intent stays
// pressed until its window passes without a new event for it.
type HoldTracker struct {
	delay     time.Duration // Window after the first event of a press
	window    time.Duration // Window after each auto-repeat event
	last      [2][intentsPerPlayer]time.Time
	repeating [2][intentsPerPlayer]bool
}

// NewHoldTracker creates a tracker. Non-positive values use
// DefaultRepeatDelay and DefaultHoldWindow.
func NewHoldTracker(delay, window time.Duration) *HoldTracker {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{delay: delay, window: window}
}

// Press records a key event for the intent at now. An event arriving while
// the intent is still held is an auto-repeat.
func (h *HoldTracker) Press(p core.PlayerID, i core.Intent, now time.Time) {
	if (p != core.Player1 && p != core.Player2) || i < 0 || int(i) >= intentsPerPlayer {
		return
	}
	pi := p.Index()
	h.repeating[pi][i] = h.held(pi, int(i), now)
	h.last[pi][i] = now
}

// Frame returns every intent still held at now.
func (h *HoldTracker) Frame(now time.Time) core.IntentFrame {
	f := core.NewIntentFrame()
	for pi, id := range []core.PlayerID{core.Player1, core.Player2} {
		for ii := range h.last[pi] {
			if h.held(pi, ii, now) {
				f.Press(id, core.Intent(ii))
			}
		}
	}
	return f
}

func (h *HoldTracker) held(pi, ii int, now time.Time) bool {
	t := h.last[pi][ii]
	if t.IsZero() {
		return false
	}
	w := h.delay
	if h.repeating[pi][ii] {
		w = h.window
	}
	return now.Sub(t) < w
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	h.last = [2][intentsPerPlayer]time.Time{}
	h.repeating = [2][intentsPerPlayer]bool{}
}
