package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/platform/tui"
	"github.com/vovakirdan/asteroid-crossing/internal/session"
	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

var (
	flagHoldMs        int
	flagRepeatDelayMs int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local two-player match",
	Long: `Start a hot-seat match in this terminal.

Controls:
  Arrow keys   - Player 1 (starts at the bottom)
  W A S D      - Player 2 (starts at the top)
  Space        - Continue on title and result pages
  Esc/Ctrl+C   - Quit (Q also quits on pages)

Terminals send no key releases. A key counts as held for --repeat-delay
after it is first pressed, then for --hold after each auto-repeat. If a held
key moves, pauses, then moves again, raise --repeat-delay to your keyboard's
repeat delay.

A new high score is written back to the config file. Matches are recorded
in the history database unless it cannot be opened.

Examples:
  crossing play
  crossing play --seed 42
  crossing play --config ./configs/crossing.yaml --log crossing.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagHoldMs, "hold", int(tui.DefaultHoldWindow.Milliseconds()), "Milliseconds a key counts as held after each key repeat")
	playCmd.Flags().IntVar(&flagRepeatDelayMs, "repeat-delay", int(tui.DefaultRepeatDelay.Milliseconds()), "Milliseconds a key counts as held after its first press; match your keyboard's repeat delay")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := openLogger("crossing")
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "error", err)
		// Continue without match history
	} else {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := loaded.Config
	highScores := config.NewHighScoreFile(loaded.WritablePath())
	seeds := seedSequence(flagSeed)

	return tui.Run(ctx, tui.Options{
		Config:      cfg,
		Logger:      logger,
		HoldWindow:  time.Duration(flagHoldMs) * time.Millisecond,
		RepeatDelay: time.Duration(flagRepeatDelayMs) * time.Millisecond,
		Width:       width,
		Height:      height,
		NewSession: func(extra ...session.Option) *session.Session {
			opts := []session.Option{
				session.WithLogger(logger),
				session.WithHighScoreWriter(highScores),
			}
			if store != nil {
				opts = append(opts, session.WithRecorder(store))
			}
			if seed, ok := seeds(); ok {
				opts = append(opts, session.WithSeed(seed))
			}
			return session.New(cfg, append(opts, extra...)...)
		},
	})
}

// seedSequence yields seed, seed+1, ... for successive matches, or nothing
// when seed is 0 so that each match is seeded from the clock.
func seedSequence(seed int64) func() (int64, bool) {
	next := seed
	return func() (int64, bool) {
		if seed == 0 {
			return 0, false
		}
		s := next
		next++
		return s, true
	}
}
