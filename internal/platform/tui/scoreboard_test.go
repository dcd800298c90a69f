package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks    int64
		tick     time.Duration
		expected string
	}{
		{0, 10 * time.Millisecond, "0.00s"},
		{3900, 10 * time.Millisecond, "39.00s"},
		{4321, 10 * time.Millisecond, "43.21s"},
		{3, 16 * time.Millisecond, "0.04s"},
	}
	for _, tt := range tests {
		if got := FormatTicks(tt.ticks, tt.tick); got != tt.expected {
			t.Errorf("FormatTicks(%d, %v) = %q, expected %q", tt.ticks, tt.tick, got, tt.expected)
		}
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	store.SaveScore("platformer", 500)
	store.SaveScore("platformer", 900)
	store.SaveLevelTime("platformer", "01-green-hills", 1500, 4200)

	m := NewScoreboardModel(store, 100, 30, 10*time.Millisecond)
	if m.games[m.gameCursor].ID != "platformer" {
		t.Fatalf("first mode = %q, expected platformer", m.games[m.gameCursor].ID)
	}
	if len(m.rows) != 2 || m.rows[0][1] != "900" {
		t.Errorf("run rows = %v", m.rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(ScoreboardModel)
	if len(m.rows) != 1 || m.rows[0][0] != "01-green-hills" || m.rows[0][1] != "42.00s" {
		t.Errorf("level rows = %v", m.rows)
	}
	if !strings.Contains(m.View(), "BEST CLEARS") {
		t.Error("View() should title the level view")
	}

	// practice has nothing recorded
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.rows) != 0 || !strings.Contains(m.View(), "No levels cleared yet") {
		t.Errorf("practice rows = %v", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("Esc should go back")
	}
}
