package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and levels",
	Long: `Shows the registered game modes followed by the levels found in the
bundled set, or in --levels-dir when given.`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level files (default: bundled levels)")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	levels, err := loadLevels(flagLevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()

	maxIDLen = 2
	for _, lvl := range levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Coins", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")
	for _, lvl := range levels {
		size := fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())
		fmt.Printf("  %-*s  %-7s  %-5d  %s\n", maxIDLen, lvl.ID, size, lvl.CoinCount(), lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play [mode] --level <id>' to start at a level.")
}
