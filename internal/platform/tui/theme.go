package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles shared by the menus and scoreboard.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuError       lipgloss.Style

	// Footer with key hints
	Controls lipgloss.Style

	// Tables and panels
	PanelBorder lipgloss.Style
	TableHeader lipgloss.Style
	TableActive lipgloss.Style
	EmptyNotice lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuError:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),
		TableActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		EmptyNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with poor color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true).Bold(true)
	theme.MenuError = lipgloss.NewStyle().Bold(true)
	theme.TableActive = lipgloss.NewStyle().Reverse(true)
	return theme
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
