package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroid-crossing/internal/platform/tui"
	"github.com/vovakirdan/asteroid-crossing/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best scores and recent matches",
	Long: `Display the match history.

In a terminal this opens an interactive scoreboard; use --plain, or pipe
the output, to print text instead.

Examples:
  crossing scores
  crossing scores --plain --limit 20
  crossing scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text instead of the interactive scoreboard")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && !flagPlain && term.IsTerminal(int(f.Fd())) {
		width, height, sizeErr := term.GetSize(int(f.Fd()))
		if sizeErr != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(cmd.Context(), store, width, height)
	}

	return printScores(cmd, out, store)
}

func printScores(cmd *cobra.Command, out io.Writer, store *storage.Store) error {
	ctx := cmd.Context()

	scores, err := store.TopScores(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	matches, err := store.RecentMatches(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Asteroid Crossing")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'crossing play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-6s  %-8d  %s\n", i+1, e.Player, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent Matches")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-16s  %-6s  %-12s  %-12s  %s\n", "Date", "Winner", "P1", "P2", "Rounds")
	for _, m := range matches {
		fmt.Fprintf(out, "  %-16s  %-6s  %-12s  %-12s  %d\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Winner,
			fmt.Sprintf("%d L%d", m.P1Score, m.P1Level),
			fmt.Sprintf("%d L%d", m.P2Score, m.P2Level),
			m.Rounds,
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Matches: %d  P1 wins: %d  P2 wins: %d  Draws: %d\n", stats.Matches, stats.P1Wins, stats.P2Wins, stats.Draws)
	fmt.Fprintf(out, "Best: %d\n", stats.HighScore)
	return nil
}
