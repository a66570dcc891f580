package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/core"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
	"github.com/vovakirdan/asteroid-crossing/internal/session"
)

// IntermissionDuration is the pause between rounds, in milliseconds.
const IntermissionDuration int64 = 200

// bannerDuration is how long an event message stays on the arena, in milliseconds.
const bannerDuration int64 = 900

type screenID int

const (
	screenLanding screenID = iota
	screenInstructions
	screenControls
	screenPlaying
	screenIntermission
	screenResult
	screenHighScore
)

func (s screenID) String() string {
	switch s {
	case screenLanding:
		return "landing"
	case screenInstructions:
		return "instructions"
	case screenControls:
		return "controls"
	case screenPlaying:
		return "playing"
	case screenIntermission:
		return "intermission"
	case screenResult:
		return "result"
	case screenHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// isPage reports whether the screen waits for space to continue.
func (s screenID) isPage() bool {
	switch s {
	case screenPlaying, screenIntermission:
		return false
	default:
		return true
	}
}

// Options configures a Model.
type Options struct {
	Config      config.Config
	NewSession  func(opts ...session.Option) *session.Session // Called once per match
	Logger      *log.Logger
	HoldWindow  time.Duration // Hold after each key repeat
	RepeatDelay time.Duration // Hold after the first key event
	Width       int
	Height      int
}

// Model is the Bubble Tea model for a local two-player match.
type Model struct {
	ctx      context.Context
	opts     Options
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	hold     *HoldTracker
	clock    *core.FrameClock
	renderer ArenaRenderer
	screen   *core.Screen
	now      func() time.Time

	current screenID
	sess    *session.Session
	round   *crossing.Round
	snap    crossing.Snapshot

	intermissionLeft int64
	banner           string
	bannerLeft       int64

	outcome   session.Outcome
	oldHigh   int
	finishErr error

	width    int
	height   int
	quitting bool
}

// NewModel creates the model. ctx bounds persistence at the end of a match.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewSession == nil {
		cfg := opts.Config
		logger := opts.Logger
		opts.NewSession = func(extra ...session.Option) *session.Session {
			return session.New(cfg, append([]session.Option{session.WithLogger(logger)}, extra...)...)
		}
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		def := core.DefaultConfig()
		width, height = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.Width = width

	return Model{
		ctx:      ctx,
		opts:     opts,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		hold:     NewHoldTracker(opts.RepeatDelay, opts.HoldWindow),
		clock:    core.NewFrameClock(opts.Config.Info.FPS),
		renderer: NewArenaRenderer(opts.Config.Info.Width, opts.Config.Info.Height),
		screen:   core.NewScreen(width, max(height-1, 1)),
		now:      time.Now,
		oldHigh:  opts.Config.ScoreKeeping.HighScore,
		width:    width,
		height:   height,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.clock.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Quit is honoured on every screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) || (m.current.isPage() && key.Matches(msg, m.keys.QuitPage)) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.current == screenPlaying {
		if p, intent, ok := m.keys.Intent(msg); ok {
			m.hold.Press(p, intent, m.now())
		}
		return m, nil
	}

	if m.current.isPage() && key.Matches(msg, m.keys.Advance) {
		m.advance()
	}
	return m, nil
}

// advance moves past a page screen.
func (m *Model) advance() {
	switch m.current {
	case screenLanding:
		m.current = screenInstructions
	case screenInstructions:
		m.current = screenControls
	case screenControls:
		m.startMatch()
	case screenResult:
		if m.outcome.NewHighScore {
			m.current = screenHighScore
			return
		}
		m.oldHigh = m.outcome.HighScore
		m.current = screenLanding
	case screenHighScore:
		m.oldHigh = m.outcome.HighScore
		m.current = screenLanding
	}
}

func (m *Model) startMatch() {
	m.sess = m.opts.NewSession(session.WithHighScore(m.oldHigh))
	m.outcome = session.Outcome{}
	m.finishErr = nil
	m.startRound()
}

func (m *Model) startRound() {
	round, err := m.sess.StartRound()
	if err != nil {
		m.finishMatch()
		return
	}
	m.round = round
	m.snap = round.Snapshot()
	m.hold.Reset()
	m.clock.Reset()
	m.banner, m.bannerLeft = "", 0
	m.current = screenPlaying
}

func (m *Model) finishMatch() {
	m.round = nil
	out, err := m.sess.Finish(m.ctx)
	if err != nil {
		m.logger.Error("could not persist match", "err", err)
		m.finishErr = err
	}
	m.outcome = out
	m.current = screenResult
}

// handleTick advances the simulation or the intermission countdown.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.clock.TickInterval())

	switch m.current {
	case screenPlaying:
		dt := m.clock.Tick(now)
		res := m.round.Step(m.hold.Frame(now), dt)
		m.snap = res.Snapshot
		m.showEvents(res.Events, dt)
		if res.Done {
			m.sess.FinishRound(m.round.Result())
			if m.sess.Over() {
				m.finishMatch()
				return m, next
			}
			m.current = screenIntermission
			m.intermissionLeft = IntermissionDuration
		}

	case screenIntermission:
		m.intermissionLeft -= m.clock.Tick(now)
		if m.intermissionLeft <= 0 {
			m.startRound()
		}
	}

	return m, next
}

// showEvents turns round events into a short banner.
func (m *Model) showEvents(events []crossing.Event, dt int64) {
	m.bannerLeft -= dt
	if m.bannerLeft <= 0 {
		m.banner = ""
	}
	for _, e := range events {
		var text string
		switch e := e.(type) {
		case crossing.ExplosionEvent:
			text = fmt.Sprintf("%s exploded!", e.Player)
		case crossing.GoalEvent:
			text = fmt.Sprintf("%s made it in %ds  +%d", e.Player, e.Seconds, e.Bonus)
		case crossing.MilestoneEvent:
			text = fmt.Sprintf("%s reached %d points", e.Player, e.Score)
		case crossing.TurnChangedEvent:
			if m.banner == "" {
				text = fmt.Sprintf("%s go!", e.Player)
			}
		default:
			continue
		}
		if text != "" {
			m.banner, m.bannerLeft = text, bannerDuration
		}
	}
}

// Page styles.
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	MarginBottom(1)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(1, 3)

var (
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	p1Style    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	p2Style    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenPlaying, screenIntermission:
		banner := m.banner
		if m.current == screenIntermission {
			banner = fmt.Sprintf("Round %d", m.sess.State().Rounds+1)
		}
		m.renderer.Draw(m.screen, m.snap, banner)
		return RenderScreen(m.screen) + "\n" + m.help.View(playKeys(m.keys))
	}

	body := m.pageBody()
	page := lipgloss.JoinVertical(lipgloss.Center, boxStyle.Render(body), dimStyle.Render(m.help.View(pageKeys(m.keys))))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, page)
}

func (m Model) pageBody() string {
	name := strings.ToUpper(m.opts.Config.Info.Name)
	switch m.current {
	case screenLanding:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(name),
			textStyle.Render("Two ships. Five asteroid belts. One way across."),
			"",
			dimStyle.Render(fmt.Sprintf("High score: %d", m.oldHigh)),
		)

	case screenInstructions:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("HOW TO PLAY"),
			textStyle.Render("Players take turns crossing the arena."),
			textStyle.Render(p1Style.Render("Player 1")+" starts at the bottom and flies up."),
			textStyle.Render(p2Style.Render("Player 2")+" starts at the top and flies down."),
			"",
			textStyle.Render("Passing an asteroid belt scores 10, a black hole 5."),
			textStyle.Render("Reaching the far side scores 1000 / (seconds + 1)"),
			textStyle.Render("and raises your level. Asteroids speed up with it."),
			"",
			textStyle.Render(fmt.Sprintf("First past level %d wins.", m.opts.Config.Info.MaxRounds)),
		)

	case screenControls:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("CONTROLS"),
			p1Style.Render("Player 1")+textStyle.Render("  arrow keys"),
			p2Style.Render("Player 2")+textStyle.Render("  W A S D"),
			"",
			textStyle.Render("Touch an asteroid (O) or a black hole (@)"),
			textStyle.Render("and your turn ends in an explosion."),
		)

	case screenResult:
		return m.resultBody()

	case screenHighScore:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("NEW HIGH SCORE"),
			textStyle.Render(fmt.Sprintf("Old record  %dP", m.oldHigh)),
			p1Style.Render(fmt.Sprintf("New record  %dP", m.outcome.HighScore)),
		)
	}
	return ""
}

func (m Model) resultBody() string {
	var title string
	switch {
	case m.outcome.Draw:
		title = "DRAW"
	case m.outcome.Winner == core.Player1:
		title = p1Style.Render("PLAYER 1 WINS")
	default:
		title = p2Style.Render("PLAYER 2 WINS")
	}

	lines := []string{
		titleStyle.Render(title),
		p1Style.Render(fmt.Sprintf("P1  %dP  level %d", m.outcome.Scores[0], m.outcome.Levels[0])),
		p2Style.Render(fmt.Sprintf("P2  %dP  level %d", m.outcome.Scores[1], m.outcome.Levels[1])),
		dimStyle.Render(fmt.Sprintf("%d rounds", m.outcome.Rounds)),
	}
	if m.outcome.Draw {
		lines = append(lines, "", textStyle.Render("Same level and same score: nobody wins."))
	}
	if m.finishErr != nil {
		lines = append(lines, "", errorStyle.Render("Results could not be saved."))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// Run starts a local match in the current terminal.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
