package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change difficulty and
Enter to pick a mode. A level picker follows. After a game ends with Esc
you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Difficulty
  Enter/Space  - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --levels-dir ./my-levels`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	menuCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level files (default: bundled levels)")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig()
	tick := gameTick()

	var message string

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		message = ""

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, tick)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		levels, err := loadLevels(flagLevelsDir)
		if err != nil {
			message = err.Error()
			continue
		}

		selection, err := tui.RunLevelSelector(levels, cfg)
		if err != nil {
			message = err.Error()
			continue
		}
		if selection == nil {
			continue
		}

		platformer.SetOptions(platformer.Options{
			ConfigPath: flagConfig,
			LevelsDir:  flagLevelsDir,
			LevelID:    selection.LevelID,
			Difficulty: menuResult.Difficulty,
		})

		game, err := registry.Create(gameID)
		if err != nil {
			message = err.Error()
			continue
		}

		back, err := tui.Run(game, store, cfg)
		if err != nil {
			message = err.Error()
			continue
		}
		if !back {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}

// gameTick returns the simulation tick of the configured game, which is
// the unit level clear times are stored in.
func gameTick() time.Duration {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return config.DefaultPlatformerConfig().SimConfig().Tick
	}
	return cfg.SimConfig().Tick
}
