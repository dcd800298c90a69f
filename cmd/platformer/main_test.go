package main

import "testing"

func TestRootFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{"fps", "db", "log-file", "verbose"} {
		if flags.Lookup(name) == nil {
			t.Errorf("Lookup(%q) = nil, expected a persistent flag", name)
		}
	}

	// Runs replay from level data and input alone.
	if f := flags.Lookup("seed"); f != nil {
		t.Errorf("Lookup(\"seed\") = %v, expected nil", f.Name)
	}
}

func TestRuntimeConfigUsesFPS(t *testing.T) {
	old := flagFPS
	defer func() { flagFPS = old }()

	flagFPS = 30
	cfg := runtimeConfig()
	if cfg.TickRate != 30 {
		t.Errorf("runtimeConfig().TickRate = %d, expected 30", cfg.TickRate)
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		t.Errorf("runtimeConfig() screen = %dx%d, expected a positive size", cfg.ScreenW, cfg.ScreenH)
	}
}
