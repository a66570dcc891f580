// crossing is a two-player hot-seat arcade game for the terminal: ships take
// turns crossing an arena full of asteroids and black holes.
//
// Usage:
//
//	crossing play              - Play a local match
//	crossing serve             - Host matches over SSH
//	crossing scores            - Browse match history
//	crossing init-config       - Write the default config file
//	crossing simulate          - Play a headless match with random input
//
// Global flags:
//
//	--config <path> - Game config YAML (default: search ~/.crossing, ./configs, embedded)
//	--seed <value>  - RNG seed for reproducible entity placement
//	--db <path>     - Match history database (default: ~/.crossing/scores.db)
//	--log <path>    - Write logs to this file (default: discard)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crossing",
	Short: "Asteroid Crossing - a two-player race across an asteroid field",
	Long: `Asteroid Crossing is a hot-seat game for two players sharing one keyboard.

Player 1 flies up from the bottom with the arrow keys, player 2 flies down
from the top with WASD. Cross the asteroid belts, avoid the black holes and
reach the far side as fast as you can. Every crossing raises your level and
speeds up the asteroids.

Available commands:
  play         - Play a local match
  serve        - Host matches over SSH
  scores       - Browse match history
  init-config  - Write the default config file
  simulate     - Play a headless match with random input

Examples:
  crossing play
  crossing play --config ./my-crossing.yaml --seed 42
  crossing serve --ssh :2222
  crossing scores --limit 20
  crossing simulate --rounds 10`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the game config from --config or the search path.
func loadConfig() (config.Loaded, error) {
	return config.Load(flagConfig)
}

// openLogger returns a logger writing to --log, or a discarding logger.
// The terminal belongs to the game, so logs never go to stdout.
func openLogger(prefix string) (*log.Logger, io.Closer, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}
