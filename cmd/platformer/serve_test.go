package main

import (
	"testing"
	"time"
)

func TestServerConfig(t *testing.T) {
	oldAddr, oldIdle, oldFPS, oldDB := flagSSHAddr, flagIdleTimeout, flagFPS, flagDBPath
	defer func() {
		flagSSHAddr, flagIdleTimeout, flagFPS, flagDBPath = oldAddr, oldIdle, oldFPS, oldDB
	}()

	flagSSHAddr = ":2222"
	flagDBPath = "scores.db"

	tests := []struct {
		name    string
		idle    int
		fps     int
		wantErr bool
	}{
		{"defaults", 30, 60, false},
		{"zero idle", 0, 60, true},
		{"negative fps", 30, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagIdleTimeout, flagFPS = tt.idle, tt.fps

			cfg, err := serverConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("serverConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Address != ":2222" || cfg.DBPath != "scores.db" {
				t.Errorf("serverConfig() = %+v", cfg)
			}
			if cfg.IdleTimeout != 30*time.Minute || cfg.TickRate != 60 {
				t.Errorf("serverConfig() idle %v tick rate %d", cfg.IdleTimeout, cfg.TickRate)
			}
		})
	}
}
