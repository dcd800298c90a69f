package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// cellStyle returns the lipgloss style for a cell color.
func cellStyle(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen turns the frame a game drew into the string Bubble Tea
// prints. Each row is split into runs of one color so a level row of ground
// or sky costs a single escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run = append(run, cell.Rune)
			}
			sb.WriteString(cellStyle(color).Render(string(run)))
		}
	}
	return sb.String()
}
