package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	require.NoError(t, err)
	id, err := store.SaveMatch(ctx, MatchRecord{P1Score: 10, Winner: "P1"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	m, err := store.MatchByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, m.P1Score)
}

func TestSaveMatchGeneratesID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveMatch(ctx, MatchRecord{
		P1Score:  1450,
		P2Score:  820,
		P1Level:  6,
		P2Level:  4,
		Winner:   "P1",
		Rounds:   5,
		Duration: 93 * time.Second,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "match ID should be a UUID")

	m, err := store.MatchByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, m.MatchID)
	assert.Equal(t, 1450, m.P1Score)
	assert.Equal(t, 820, m.P2Score)
	assert.Equal(t, 6, m.P1Level)
	assert.Equal(t, 4, m.P2Level)
	assert.Equal(t, "P1", m.Winner)
	assert.Equal(t, 5, m.Rounds)
	assert.Equal(t, 93*time.Second, m.Duration)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := MatchRecord{MatchID: uuid.NewString(), Winner: "draw"}
	_, err := store.SaveMatch(ctx, rec)
	require.NoError(t, err)

	_, err = store.SaveMatch(ctx, rec)
	assert.Error(t, err)

	// The failed transaction must not leave orphan scores
	scores, err := store.TopScores(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestMatchByIDNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.MatchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentMatchesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := store.SaveMatch(ctx, MatchRecord{
			P1Score:   i * 100,
			Winner:    "P1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	matches, err := store.RecentMatches(ctx, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 400, matches[0].P1Score)
	assert.Equal(t, 300, matches[1].P1Score)
	assert.Equal(t, 200, matches[2].P1Score)
}

func TestTopScoresAndHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, high, "empty store has no high score")

	_, err = store.SaveMatch(ctx, MatchRecord{P1Score: 300, P2Score: 900, Winner: "P2"})
	require.NoError(t, err)
	_, err = store.SaveMatch(ctx, MatchRecord{P1Score: 500, P2Score: 100, Winner: "P1"})
	require.NoError(t, err)

	scores, err := store.TopScores(ctx, 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, ScoreEntry{MatchID: scores[0].MatchID, Player: "P2", Score: 900, CreatedAt: scores[0].CreatedAt}, scores[0])
	assert.Equal(t, 500, scores[1].Score)
	assert.Equal(t, "P1", scores[1].Player)
	assert.Equal(t, 300, scores[2].Score)

	high, err = store.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900, high)
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	st, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)

	for _, w := range []string{"P1", "P1", "P2", "draw"} {
		_, err := store.SaveMatch(ctx, MatchRecord{P1Score: 10, P2Score: 20, Winner: w})
		require.NoError(t, err)
	}

	st, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Matches)
	assert.Equal(t, 2, st.P1Wins)
	assert.Equal(t, 1, st.P2Wins)
	assert.Equal(t, 1, st.Draws)
	assert.Equal(t, 20, st.HighScore)
	assert.False(t, st.LastPlayed.IsZero())
}
