// Package session runs a match: successive rounds of Asteroid Crossing until
// a player outgrows the round limit, then decides the winner and persists
// the high score and match history.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/core"
	"github.com/vovakirdan/asteroid-crossing/internal/crossing"
	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

// ErrMatchOver is returned when a round is requested after the match ended.
var ErrMatchOver = errors.New("session: match is over")

// HighScoreWriter persists a new record. config.HighScoreFile implements it.
type HighScoreWriter interface {
	WriteHighScore(score int) error
}

// Recorder stores finished matches. storage.Store implements it.
type Recorder interface {
	SaveMatch(ctx context.Context, m storage.MatchRecord) (string, error)
}

// MatchState is the running state of a match.
type MatchState struct {
	Scores    [2]int
	Levels    [2]int
	HighScore int
	Rounds    int   // Rounds finished so far
	Elapsed   int64 // Simulated milliseconds across finished rounds
}

// Score returns a player's running total.
func (m MatchState) Score(id core.PlayerID) int {
	return m.Scores[id.Index()]
}

// Level returns a player's level.
func (m MatchState) Level(id core.PlayerID) int {
	return m.Levels[id.Index()]
}

// Outcome is the final decision of a match.
type Outcome struct {
	Winner       core.PlayerID // PlayerNone on a draw
	Draw         bool
	Scores       [2]int
	Levels       [2]int
	Rounds       int
	HighScore    int  // Record after this match
	NewHighScore bool // This match set the record
	MatchID      string
}

// Session holds one match. It is not safe for concurrent use; each local or
// SSH player pair owns its own Session.
type Session struct {
	cfg    config.Config
	logger *log.Logger
	rng    *rand.Rand

	highScores HighScoreWriter
	recorder   Recorder

	state    MatchState
	round    *crossing.Round
	finished bool
	outcome  Outcome
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for match and round events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHighScoreWriter sets where a new record is written.
func WithHighScoreWriter(w HighScoreWriter) Option {
	return func(s *Session) {
		s.highScores = w
	}
}

// WithRecorder sets the match history store.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithHighScore overrides the stored record taken from the configuration,
// e.g. when earlier matches in the same process have raised it.
func WithHighScore(score int) Option {
	return func(s *Session) {
		s.state.HighScore = score
	}
}

// WithSeed makes entity placement reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a session. Both players start at level 1 with no points; the
// stored high score comes from the configuration.
func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		logger: log.New(io.Discard),
		state: MatchState{
			Levels:    [2]int{1, 1},
			HighScore: cfg.ScoreKeeping.HighScore,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// State returns a copy of the match state.
func (s *Session) State() MatchState {
	return s.state
}

// Config returns the configuration the match runs with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Round returns the round in progress, or nil.
func (s *Session) Round() *crossing.Round {
	return s.round
}

// Over reports whether the match has ended: a level exceeds max_rounds, or
// the optional rounds_limit has been played.
func (s *Session) Over() bool {
	limit := s.cfg.Info.MaxRounds
	if s.state.Levels[0] > limit || s.state.Levels[1] > limit {
		return true
	}
	return s.cfg.Info.RoundsLimit > 0 && s.state.Rounds >= s.cfg.Info.RoundsLimit
}

// StartRound creates the next round at the current levels and scores.
func (s *Session) StartRound() (*crossing.Round, error) {
	if s.Over() {
		return nil, ErrMatchOver
	}
	params := crossing.ParamsFromConfig(s.cfg, s.state.Levels, s.state.Scores)
	params.Logger = s.logger
	s.round = crossing.NewRound(params, s.rng)

	s.logger.Debug("round started", "round", s.state.Rounds+1, "p1_level", s.state.Levels[0], "p2_level", s.state.Levels[1])
	return s.round, nil
}

// FinishRound folds a finished round into the match state.
func (s *Session) FinishRound(res crossing.RoundResult) {
	s.state.Scores = res.Scores
	s.state.Levels = res.Levels
	s.state.Rounds++
	s.state.Elapsed += res.Elapsed
	s.round = nil

	s.logger.Info("round finished",
		"round", s.state.Rounds,
		"winner", res.Winner,
		"p1_score", res.Scores[0], "p2_score", res.Scores[1],
		"p1_level", res.Levels[0], "p2_level", res.Levels[1],
	)
}

// Outcome decides the match: the higher level wins, equal levels fall back
// to the higher score, and identical levels and scores are a draw.
func (s *Session) Outcome() Outcome {
	if s.finished {
		return s.outcome
	}
	st := s.state
	out := Outcome{
		Scores:    st.Scores,
		Levels:    st.Levels,
		Rounds:    st.Rounds,
		HighScore: st.HighScore,
	}
	switch {
	case st.Levels[0] != st.Levels[1]:
		out.Winner = pick(st.Levels[0] > st.Levels[1])
	case st.Scores[0] != st.Scores[1]:
		out.Winner = pick(st.Scores[0] > st.Scores[1])
	default:
		out.Draw = true
	}
	if best := max(st.Scores[0], st.Scores[1]); best > st.HighScore {
		out.HighScore = best
		out.NewHighScore = true
	}
	return out
}

func pick(p1 bool) core.PlayerID {
	if p1 {
		return core.Player1
	}
	return core.Player2
}

// Finish persists the outcome: a new record goes to the high score writer and
// the match goes to the recorder. Finishing twice returns the first outcome
// without writing again. Persistence errors are returned together with the
// outcome; the outcome stays valid.
func (s *Session) Finish(ctx context.Context) (Outcome, error) {
	if s.finished {
		return s.outcome, nil
	}
	out := s.Outcome()

	var errs []error
	if out.NewHighScore && s.highScores != nil {
		if err := s.highScores.WriteHighScore(out.HighScore); err != nil {
			errs = append(errs, fmt.Errorf("session: save high score: %w", err))
		} else {
			s.logger.Info("new high score saved", "score", out.HighScore)
		}
	}
	s.state.HighScore = out.HighScore

	if s.recorder != nil {
		id, err := s.recorder.SaveMatch(ctx, s.record(out))
		if err != nil {
			errs = append(errs, fmt.Errorf("session: record match: %w", err))
		}
		out.MatchID = id
	}

	s.finished = true
	s.outcome = out
	s.logger.Info("match finished", "winner", out.Winner, "draw", out.Draw, "rounds", out.Rounds, "match_id", out.MatchID)
	return out, errors.Join(errs...)
}

func (s *Session) record(out Outcome) storage.MatchRecord {
	winner := out.Winner.String()
	if out.Draw {
		winner = "draw"
	}
	return storage.MatchRecord{
		P1Score:  out.Scores[0],
		P2Score:  out.Scores[1],
		P1Level:  out.Levels[0],
		P2Level:  out.Levels[1],
		Winner:   winner,
		Rounds:   out.Rounds,
		Duration: time.Duration(s.state.Elapsed) * time.Millisecond,
	}
}

// PlayHeadless plays every remaining round from src and finishes the match.
func (s *Session) PlayHeadless(ctx context.Context, src crossing.FrameSource) (Outcome, error) {
	for !s.Over() {
		round, err := s.StartRound()
		if err != nil {
			return Outcome{}, err
		}
		res, err := round.Run(ctx, src, nil)
		if err != nil {
			return Outcome{}, err
		}
		s.FinishRound(res)
	}
	return s.Finish(ctx)
}
