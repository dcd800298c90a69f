package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	flagClear  bool
	flagLimit  int
	flagLevels bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top run scores and per-level best clears for a mode.

Examples:
  platformer scores
  platformer scores practice --levels
  platformer scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagLevels, "levels", false, "Also list the best times per level")
	scoresCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (for the tick length)")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := string(platformer.ModeCampaign)
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available modes.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Levels cleared: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.Clears)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}

	if !flagLevels {
		return
	}

	records, err := store.LevelRecords(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level times: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Best Clears")
	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No levels cleared yet.")
		return
	}

	tick := gameTick()
	fmt.Printf("  %-16s  %-9s  %-10s  %s\n", "Level", "Time", "Score", "Clears")
	fmt.Printf("  %-16s  %-9s  %-10s  %s\n", "-----", "----", "-----", "------")
	for _, r := range records {
		fmt.Printf("  %-16s  %-9s  %-10d  %d\n", r.LevelID, tui.FormatTicks(r.BestTicks, tick), r.BestScore, r.Clears)
	}
}
