package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
	"github.com/vovakirdan/asteroid-crossing/internal/session"
	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitConfigWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossing.yaml")

	out, err := execute(t, "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.Contains(t, out, "400x750")

	_, err = config.LoadFile(path)
	require.NoError(t, err)

	_, err = execute(t, "init-config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init-config", "--force", path)
	assert.NoError(t, err)
	flagForce = false
}

func TestSimulatePrintsOutcome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossing.yaml")
	require.NoError(t, config.WriteDefault(path, false))

	out, err := execute(t, "simulate", "--config", path, "--seed", "5", "--rounds", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: ")
	assert.Contains(t, out, "P1: ")
	assert.Contains(t, out, "Seed: 5")

	again, err := execute(t, "simulate", "--config", path, "--seed", "5", "--rounds", "4")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed, same match")
}

func TestSimulateRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "simulate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	var cfgErr *config.Error
	assert.ErrorAs(t, err, &cfgErr)
	flagConfig = ""
}

func TestScoresPlain(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")

	out, err := execute(t, "scores", "--db", db, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches recorded yet.")

	store, err := storage.Open(db)
	require.NoError(t, err)
	cfg, err := config.Parse(config.DefaultYAML(), "")
	require.NoError(t, err)
	sess := session.New(cfg, session.WithRecorder(store))
	sess.FinishRound(crossing.RoundResult{Levels: [2]int{6, 3}, Scores: [2]int{1337, 420}})
	_, err = sess.Finish(t.Context())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = execute(t, "scores", "--db", db, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "1337")
	assert.Contains(t, out, "P1 wins: 1")
	assert.Contains(t, out, "Best: 1337")
}

func TestSeedSequence(t *testing.T) {
	next := seedSequence(10)
	s, ok := next()
	assert.True(t, ok)
	assert.Equal(t, int64(10), s)
	s, _ = next()
	assert.Equal(t, int64(11), s)

	_, ok = seedSequence(0)()
	assert.False(t, ok)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23234", portOf(":23234"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "bogus", portOf("bogus"))
}
