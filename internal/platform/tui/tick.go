// Package tui provides the Bubble Tea integration for the platformer.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a rendered frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures wall time between frames. The first frame reports
// zero elapsed time.
type frameClock struct {
	last time.Time
}

// Elapsed returns the time since the previous call and remembers now.
func (c *frameClock) Elapsed(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	return d
}

// Reset forgets the previous frame, so the next one reports zero.
func (c *frameClock) Reset() {
	c.last = time.Time{}
}
