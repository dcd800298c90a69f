package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLevelsDir  string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. Without a mode the campaign ("platformer") starts;
"practice" has no timer and unlimited lives.

Without --level a level picker is shown first.

Controls:
  Left/Right, A/D   - Run
  Space/Up/W        - Jump (hold for a higher jump)
  P                 - Pause
  R                 - Restart (after game over)
  Esc               - Back to menu (when paused or over)
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 lives, 1.5x time limit
  normal - Settings as configured
  hard   - 1 life, 0.75x time limit, double time bonus

Examples:
  platformer play
  platformer play practice --level 03-caves
  platformer play --difficulty hard
  platformer play --levels-dir ./my-levels
  platformer play --config ./my-platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to start at (skips the level picker)")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level files (default: bundled levels)")
}

func runPlay(_ *cobra.Command, args []string) {
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

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	opts := platformer.Options{
		ConfigPath: flagConfig,
		LevelsDir:  flagLevelsDir,
		LevelID:    flagLevel,
		Difficulty: preset,
	}

	// Show the level picker when no level was given
	if opts.LevelID == "" {
		levels, loadErr := loadLevels(flagLevelsDir)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", loadErr)
			os.Exit(1)
		}

		selection, selErr := tui.RunLevelSelector(levels, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}

		// User pressed back or quit
		if selection == nil {
			return
		}
		opts.LevelID = selection.LevelID
	}

	platformer.SetOptions(opts)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	// Run the game
	_, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadLevels reads the bundled levels, or those in dir when set.
func loadLevels(dir string) ([]level.Level, error) {
	loader := level.Bundled()
	if dir != "" {
		loader = level.NewDirLoader(dir)
	}
	levels, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, platformer.ErrNoLevels
	}
	return levels, nil
}

// openStore opens the scores database. A failure is a warning: the game
// still runs without a scoreboard.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
