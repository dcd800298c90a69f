// platformer is a side-scrolling platformer played in the terminal.
//
// Usage:
//
//	platformer list              - List game modes and levels
//	platformer play [mode]       - Play a mode (default: platformer)
//	platformer menu              - Start menu to pick modes interactively
//	platformer serve             - Start SSH server for remote play
//	platformer scores [mode]     - Show high scores and best clears
//	platformer simulate          - Run a level headless and print the actor
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--db <path>        - Set database path (default: ~/.platformer/scores.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLogFile string
	flagVerbose bool
)

// Commands that own the terminal through Bubble Tea.
var tuiCommands = map[string]bool{"play": true, "menu": true}

var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Run and jump through levels in your terminal",
	Long: `TUI Platformer is a terminal side-scroller: run, jump, collect coins
and reach the flag before the timer runs out.

Available commands:
  list      - Show game modes and bundled levels
  play      - Play a mode directly
  menu      - Interactive mode picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and best clears
  simulate  - Run a level without a terminal

Examples:
  platformer list
  platformer play
  platformer play --level 02-brick-road --difficulty hard
  platformer menu
  platformer serve --ssh :2222
  platformer simulate --ticks 600 --right --jump-every 50`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath(), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setupLogging installs the default logger. TUI commands discard logs
// unless --log-file is set, since output would tear the alt screen.
func setupLogging(cmd *cobra.Command, _ []string) error {
	var w io.Writer = os.Stderr
	level := log.InfoLevel

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case tuiCommands[cmd.Name()]:
		w = io.Discard
	}
	if flagVerbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
	log.SetDefault(logger)
	return nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}
