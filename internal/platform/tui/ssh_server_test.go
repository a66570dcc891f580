package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
)

func testBoard(t *testing.T, high int) (*highScoreBoard, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crossing.yaml")
	require.NoError(t, config.WriteDefault(path, false))
	return &highScoreBoard{value: high, file: config.NewHighScoreFile(path)}, path
}

func TestHighScoreBoardOnlyRaises(t *testing.T) {
	board, path := testBoard(t, 0)

	require.NoError(t, board.WriteHighScore(700))
	assert.Equal(t, 700, board.Current())

	require.NoError(t, board.WriteHighScore(300))
	assert.Equal(t, 700, board.Current())

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 700, loaded.ScoreKeeping.HighScore)
}

func TestHighScoreBoardSkipsFileWhenNotHigher(t *testing.T) {
	board, path := testBoard(t, 900)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, board.WriteHighScore(900))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHighScoreBoardKeepsRecordAfterFailedWrite(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	board := &highScoreBoard{value: 100, file: config.NewHighScoreFile(filepath.Join(blocker, "crossing.yaml"))}

	assert.Error(t, board.WriteHighScore(500))
	assert.Equal(t, 100, board.Current())

	// A lower improvement is still attempted rather than hidden by the failed one
	assert.Error(t, board.WriteHighScore(400))
	assert.Equal(t, 100, board.Current())

	good, path := testBoard(t, 0)
	board.file = good.file
	require.NoError(t, board.WriteHighScore(400))
	assert.Equal(t, 400, board.Current())

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 400, loaded.ScoreKeeping.HighScore)
}

func TestModelOptionsShareBoard(t *testing.T) {
	cfg, err := config.Parse(config.DefaultYAML(), "")
	require.NoError(t, err)
	board, _ := testBoard(t, 120)

	srv := &SSHServer{
		config: SSHServerConfig{Game: config.Loaded{Config: cfg}},
		scores: board,
		logger: log.New(io.Discard),
	}

	opts := srv.modelOptions("alice", 100, 30)
	assert.Equal(t, 120, opts.Config.ScoreKeeping.HighScore)
	assert.Equal(t, 100, opts.Width)

	// Another connection set a record after this one connected
	require.NoError(t, board.WriteHighScore(450))

	sess := opts.NewSession()
	assert.Equal(t, 450, sess.State().HighScore)
}
