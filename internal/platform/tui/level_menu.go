package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	LevelID string // empty = start from the first level
}

// LevelMenuModel is the level picker shown before a run.
type LevelMenuModel struct {
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levels       []level.Level
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a level picker over the given levels.
func NewLevelMenuModel(levels []level.Level, width, height int) LevelMenuModel {
	return LevelMenuModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		levels:    levels,
		choosing:  true,
		theme:     GetTheme(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		// Entry 0 is "Start from Beginning", levels follow.
		if m.cursor < len(m.levels) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor > 0 {
			m.selection = LevelSelection{LevelID: m.levels[m.cursor-1].ID}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return core.Max(m.height-10, 3) // header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S E L E C T   L E V E L"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(m.theme.MenuError.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), len(m.levels)+1)
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		var line string
		if i == 0 {
			line = "Start from Beginning"
		} else {
			lvl := m.levels[i-1]
			line = fmt.Sprintf("%2d. %s (%dx%d)", i, lvl.Name, lvl.Width(), lvl.Height())
		}
		b.WriteString(centerText(style.Render(cursor+line), m.width))
		b.WriteString("\n")
	}

	// Scroll indicators
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels)+1 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker. A nil selection means the user
// went back or quit.
func RunLevelSelector(levels []level.Level, cfg core.RuntimeConfig) (*LevelSelection, error) {
	model := NewLevelMenuModel(levels, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
