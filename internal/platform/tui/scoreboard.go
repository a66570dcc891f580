package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Minimum table width
	maxRows       = 100 // Max rows to load per view
)

// History is the read side of match storage used by the scoreboard.
type History interface {
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
	RecentMatches(ctx context.Context, limit int) ([]storage.MatchRecord, error)
}

// scoreboardView selects what the table lists.
type scoreboardView int

const (
	viewTopScores scoreboardView = iota
	viewRecentMatches
	viewCount
)

func (v scoreboardView) String() string {
	if v == viewRecentMatches {
		return "Recent matches"
	}
	return "Top scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextView, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for browsing match history.
type ScoreboardModel struct {
	ctx      context.Context
	history  History
	view     scoreboardView
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	rows     int
	loadErr  error
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(ctx context.Context, history History, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		ctx:     ctx,
		history: history,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.load()
	return m
}

// columns returns the table layout for the current view.
func (m ScoreboardModel) columns() []table.Column {
	if m.view == viewRecentMatches {
		return []table.Column{
			{Title: "Date", Width: 16},
			{Title: "Winner", Width: 7},
			{Title: "P1", Width: 12},
			{Title: "P2", Width: 12},
			{Title: "Rounds", Width: 6},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 7},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: max(m.width-35, tableMinWidth-23)},
	}
}

// load queries the history for the current view and rebuilds the table.
func (m *ScoreboardModel) load() {
	var rows []table.Row
	m.loadErr = nil

	switch {
	case m.history == nil:
	case m.view == viewRecentMatches:
		matches, err := m.history.RecentMatches(m.ctx, maxRows)
		m.loadErr = err
		for _, r := range matches {
			rows = append(rows, table.Row{
				r.CreatedAt.Local().Format("Jan 02 15:04"),
				r.Winner,
				fmt.Sprintf("%d L%d", r.P1Score, r.P1Level),
				fmt.Sprintf("%d L%d", r.P2Score, r.P2Level),
				fmt.Sprintf("%d", r.Rounds),
			})
		}
	default:
		scores, err := m.history.TopScores(m.ctx, maxRows)
		m.loadErr = err
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Player,
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	m.rows = len(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	tabs := make([]string, 0, viewCount)
	for v := scoreboardView(0); v < viewCount; v++ {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
		if v == m.view {
			style = style.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
		}
		tabs = append(tabs, style.Render(v.String()))
	}

	b.WriteString(titleStyle.Render("ASTEROID CROSSING - HALL OF FAME"))
	b.WriteString("\n")
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.tableContent()))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tableContent renders the table or an empty/error message.
func (m ScoreboardModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return errorStyle.Render("Could not load history: " + m.loadErr.Error())
	case m.rows == 0:
		return emptyStyle.Render("No matches recorded yet.\nPlay a match to set a high score!")
	}
	return m.table.View()
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(ctx context.Context, history History, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(ctx, history, width, height),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
