package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbeddedDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML(), "")
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.Info.Width)
	assert.Equal(t, 750, cfg.Info.Height)
	assert.Equal(t, "Asteroid Crossing", cfg.Info.Name)
	assert.Equal(t, 60, cfg.Info.FPS)
	assert.Equal(t, 5, cfg.Info.MaxRounds)
	assert.Equal(t, 4, cfg.Info.BlackHoleCount)
	assert.Equal(t, 0, cfg.Info.RoundsLimit)
	assert.Equal(t, 0, cfg.ScoreKeeping.HighScore)
	assert.InDelta(t, 0.5, cfg.Info.GameSpeed, 1e-9)
}

func TestParseMissingKeys(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		key    string
	}{
		{"fps", "    fps: 60\n", "info.fps"},
		{"game speed", "    game_speed: 0.5\n", "info.game_speed"},
		{"font", "    font: Fonts/PixelFont.ttf\n", "info.font"},
		{"high score", "    high_score: 0\n", "score_keeping.high_score"},
		{"whole section", "score_keeping:\n    high_score: 0\n", "score_keeping"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := string(DefaultYAML())
			require.Contains(t, doc, tc.remove)
			doc = strings.Replace(doc, tc.remove, "", 1)

			_, err := Parse([]byte(doc), "test.yaml")
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "want *config.Error, got %T", err)
			assert.Equal(t, tc.key, cfgErr.Key)
			assert.Equal(t, "test.yaml", cfgErr.Path)
			assert.ErrorIs(t, err, ErrMissingKey)
		})
	}
}

func TestParseOptionalRoundsLimit(t *testing.T) {
	doc := strings.Replace(string(DefaultYAML()), "    rounds_limit: 0\n", "", 1)
	cfg, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Info.RoundsLimit)
}

func TestParseNullValueIsMissing(t *testing.T) {
	doc := strings.Replace(string(DefaultYAML()), "    fps: 60\n", "    fps:\n", 1)
	_, err := Parse([]byte(doc), "")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestParseBareSectionNamesFirstKey(t *testing.T) {
	tests := []struct {
		name    string
		section string
		key     string
		want    error
	}{
		{"null section", "score_keeping:\n", "score_keeping.high_score", ErrMissingKey},
		{"empty mapping", "score_keeping: {}\n", "score_keeping.high_score", ErrMissingKey},
		{"scalar section", "score_keeping: 5\n", "score_keeping", ErrInvalidValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := strings.Replace(string(DefaultYAML()), "score_keeping:\n    high_score: 0\n", tc.section, 1)

			_, err := Parse([]byte(doc), "test.yaml")

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.key, cfgErr.Key)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not yaml", "info: [unterminated", ErrMalformed},
		{"empty document", "", ErrMissingKey},
		{"wrong type", strings.Replace(string(DefaultYAML()), "fps: 60", "fps: fast", 1), ErrInvalidValue},
		{"out of range", strings.Replace(string(DefaultYAML()), "fps: 60", "fps: 0", 1), ErrInvalidValue},
		{"negative holes", strings.Replace(string(DefaultYAML()), "black_hole_count: 4", "black_hole_count: -1", 1), ErrInvalidValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "embedded default")
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := strings.Replace(string(DefaultYAML()), "max_rounds: 5", "max_rounds: 3", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Info.MaxRounds)
	assert.Equal(t, path, loaded.Path)
	assert.Equal(t, path, loaded.WritablePath())
}

func TestLoadCustomPathMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cfgErr *Error
	assert.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultYAML(), data)

	// Refuses to clobber unless asked to
	assert.ErrorIs(t, WriteDefault(path, false), os.ErrExist)
	assert.NoError(t, WriteDefault(path, true))
}

func TestDifficultyAsteroidSpeed(t *testing.T) {
	d := Difficulty{Exponent: 2}

	assert.InDelta(t, 1.0, d.AsteroidSpeed(1), 1e-9)
	assert.InDelta(t, 4.0, d.AsteroidSpeed(2), 1e-9)
	assert.InDelta(t, 9.0, d.AsteroidSpeed(3), 1e-9)
	assert.InDelta(t, 1.0, d.AsteroidSpeed(0), 1e-9, "levels below 1 clamp to 1")

	// Monotonic in level for a non-negative exponent
	half := Difficulty{Exponent: 0.5}
	prev := 0.0
	for level := 1; level <= 10; level++ {
		speed := half.AsteroidSpeed(level)
		assert.Greater(t, speed, prev)
		prev = speed
	}
}
