package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the platformer over SSH",
	Long: `Host the platformer over SSH so anyone with a terminal can run the
levels without installing anything.

Every connection gets its own game with the mode menu, its own difficulty
and its own level timer. Scores and best clear times go to the server's
database, so all players share one scoreboard. The --fps flag sets the
frame rate of every session.

The host key is read from --host-key, or created at ~/.platformer/host_key
on first start.

Examples:
  platformer serve                           # Listen on :23234
  platformer serve --ssh :2222 --fps 30      # Port 2222, 30 frames per second
  platformer serve --host-key ./my_host_key  # Use a specific host key
  platformer serve --db ./scores.db          # Use a specific scores database

Players connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Minutes a player may idle before being disconnected")
}

// serverConfig builds the SSH server settings from the command line flags.
func serverConfig() (tui.SSHServerConfig, error) {
	if flagIdleTimeout <= 0 {
		return tui.SSHServerConfig{}, errors.New("--idle-timeout must be at least 1 minute")
	}
	if flagFPS <= 0 {
		return tui.SSHServerConfig{}, fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := serverConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving the platformer over SSH on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
