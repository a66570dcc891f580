package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroid-crossing/internal/session"
)

var (
	flagRounds int
	flagDT     int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a headless match with random input",
	Long: `Run a whole match without a terminal UI. Both ships fly toward their
goals and dodge sideways at random. Nothing is persisted.

Examples:
  crossing simulate
  crossing simulate --rounds 10 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 20, "Stop after this many rounds (0 = until a player passes max_rounds)")
	simulateCmd.Flags().Int64Var(&flagDT, "dt", 16, "Simulated milliseconds per frame")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := openLogger("crossing-sim")
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := loaded.Config
	if flagRounds > 0 {
		cfg.Info.RoundsLimit = flagRounds
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess := session.New(cfg, session.WithSeed(seed), session.WithLogger(logger))
	src := session.RandomSource(rand.New(rand.NewSource(seed+1)), max(flagDT, 1))

	out, err := sess.PlayHeadless(cmd.Context(), src)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case out.Draw:
		fmt.Fprintln(w, "Result: draw")
	default:
		fmt.Fprintf(w, "Result: %s wins\n", out.Winner)
	}
	fmt.Fprintf(w, "P1: %d points, level %d\n", out.Scores[0], out.Levels[0])
	fmt.Fprintf(w, "P2: %d points, level %d\n", out.Scores[1], out.Levels[1])
	fmt.Fprintf(w, "Rounds: %d  Seed: %d\n", out.Rounds, seed)
	if out.NewHighScore {
		fmt.Fprintf(w, "New high score: %d (not saved)\n", out.HighScore)
	}
	return nil
}
