// Package config provides YAML-based game configuration loading,
// validation and high score write-back.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the complete game configuration.
// It is loaded once at startup and is read-only afterwards, except for the
// high score which is written back through RaiseHighScore.
type Config struct {
	Info         Info         `yaml:"info"`
	ScoreKeeping ScoreKeeping `yaml:"score_keeping"`
}

// Info holds the arena, window and gameplay parameters.
type Info struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Name            string  `yaml:"name"`
	Icon            string  `yaml:"icon"`
	Font            string  `yaml:"font"`
	GameSpeed       float64 `yaml:"game_speed"`        // Asteroid speed exponent
	PlayerVelocityX float64 `yaml:"player_velocity_x"` // Units per millisecond
	PlayerVelocityY float64 `yaml:"player_velocity_y"` // Units per millisecond
	MaxRounds       int     `yaml:"max_rounds"`
	FPS             int     `yaml:"fps"`
	BlackHoleCount  int     `yaml:"black_hole_count"`
	RoundsLimit     int     `yaml:"rounds_limit"` // Optional, 0 = unlimited
}

// ScoreKeeping holds persisted scores.
type ScoreKeeping struct {
	HighScore int `yaml:"high_score"`
}

// requiredKeys lists the keys that must be present, per section.
var requiredKeys = map[string][]string{
	"info": {
		"width", "height", "name", "icon", "font", "game_speed",
		"player_velocity_x", "player_velocity_y", "max_rounds", "fps",
		"black_hole_count",
	},
	"score_keeping": {"high_score"},
}

// sectionOrder keeps error reporting deterministic.
var sectionOrder = []string{"info", "score_keeping"}

// Sentinel causes carried by *Error.
var (
	ErrMissingKey   = errors.New("missing required key")
	ErrInvalidValue = errors.New("invalid value")
	ErrMalformed    = errors.New("malformed configuration")
)

// Error is a configuration error. It is fatal at startup.
type Error struct {
	Path string // Source file, empty for the embedded default
	Key  string // Dotted key such as "info.fps", empty if not key-specific
	Err  error
}

func (e *Error) Error() string {
	src := e.Path
	if src == "" {
		src = "embedded default"
	}
	if e.Key == "" {
		return fmt.Sprintf("config %s: %v", src, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", src, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validate checks value ranges. Presence of keys is checked by the loader.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, key, msg string) {
		if !ok {
			problems = append(problems, key+" "+msg)
		}
	}

	check(c.Info.Width > 0, "info.width", "must be positive")
	check(c.Info.Height > 0, "info.height", "must be positive")
	check(strings.TrimSpace(c.Info.Name) != "", "info.name", "must not be empty")
	check(c.Info.Icon != "", "info.icon", "must not be empty")
	check(c.Info.Font != "", "info.font", "must not be empty")
	check(c.Info.GameSpeed >= 0, "info.game_speed", "must not be negative")
	check(c.Info.PlayerVelocityX > 0, "info.player_velocity_x", "must be positive")
	check(c.Info.PlayerVelocityY > 0, "info.player_velocity_y", "must be positive")
	check(c.Info.MaxRounds > 0, "info.max_rounds", "must be positive")
	check(c.Info.FPS > 0, "info.fps", "must be positive")
	check(c.Info.BlackHoleCount >= 0, "info.black_hole_count", "must not be negative")
	check(c.Info.RoundsLimit >= 0, "info.rounds_limit", "must not be negative")
	check(c.ScoreKeeping.HighScore >= 0, "score_keeping.high_score", "must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidValue, strings.Join(problems, "; "))
	}
	return nil
}

// Difficulty returns the asteroid speed curve for this configuration.
func (c Config) Difficulty() Difficulty {
	return Difficulty{Exponent: c.Info.GameSpeed}
}
