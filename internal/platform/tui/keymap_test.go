package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestHoldTracker(t *testing.T) {
	km := NewKeyMapperWithHold(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.Press(runeKey('d'), start, &frame)
	if !frame.Has(core.ActionRight) {
		t.Fatal("press should set the action on the same frame")
	}

	// Still held between auto-repeats.
	frame = core.NewInputFrame()
	km.Hold(start.Add(50*time.Millisecond), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("Right should be held 50ms after the press")
	}

	// A repeat extends the hold.
	km.Press(runeKey('d'), start.Add(90*time.Millisecond), &frame)
	frame = core.NewInputFrame()
	km.Hold(start.Add(150*time.Millisecond), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("a repeat should extend the hold")
	}

	// Released once no repeat arrives.
	frame = core.NewInputFrame()
	km.Hold(start.Add(200*time.Millisecond), &frame)
	if frame.Has(core.ActionRight) || km.IsHeld(core.ActionRight) {
		t.Error("Right should be released after the hold expires")
	}
}

func TestHoldOppositeDirection(t *testing.T) {
	km := NewKeyMapperWithHold(100 * time.Millisecond)
	now := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.Press(runeKey('d'), now, &frame)
	km.Press(runeKey('a'), now.Add(10*time.Millisecond), &frame)

	frame = core.NewInputFrame()
	km.Hold(now.Add(20*time.Millisecond), &frame)
	if frame.Has(core.ActionRight) || !frame.Has(core.ActionLeft) {
		t.Errorf("pressing left should release right, got %v", frame.Actions)
	}
}

func TestHoldJump(t *testing.T) {
	km := NewKeyMapperWithHold(100 * time.Millisecond)
	now := time.Unix(1000, 0)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	frame := core.NewInputFrame()
	km.Press(space, now, &frame)
	if !frame.Has(core.ActionJump) {
		t.Fatal("first press should jump")
	}

	// Auto-repeat does not jump again.
	frame = core.NewInputFrame()
	km.Press(space, now.Add(40*time.Millisecond), &frame)
	km.Hold(now.Add(40*time.Millisecond), &frame)
	if frame.Has(core.ActionJump) || frame.Has(core.ActionJumpRelease) {
		t.Errorf("repeat frame = %v, expected no jump edges", frame.Actions)
	}

	frame = core.NewInputFrame()
	km.Hold(now.Add(140*time.Millisecond), &frame)
	if !frame.Has(core.ActionJumpRelease) {
		t.Error("expired jump should produce a release")
	}

	// Pressing again after the release is a new jump.
	frame = core.NewInputFrame()
	km.Press(space, now.Add(150*time.Millisecond), &frame)
	if !frame.Has(core.ActionJump) {
		t.Error("press after release should jump again")
	}

	km.ReleaseAll()
	frame = core.NewInputFrame()
	km.Hold(now.Add(time.Second), &frame)
	if len(frame.Actions) != 0 {
		t.Errorf("ReleaseAll() should drop holds silently, got %v", frame.Actions)
	}
}

func TestFrameClock(t *testing.T) {
	var c frameClock
	now := time.Unix(1000, 0)

	if d := c.Elapsed(now); d != 0 {
		t.Errorf("first Elapsed() = %v, expected 0", d)
	}
	if d := c.Elapsed(now.Add(16 * time.Millisecond)); d != 16*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 16ms", d)
	}
	if d := c.Elapsed(now); d != 0 {
		t.Errorf("Elapsed() going backwards = %v, expected 0", d)
	}

	c.Reset()
	if d := c.Elapsed(now.Add(time.Hour)); d != 0 {
		t.Errorf("Elapsed() after Reset = %v, expected 0", d)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
