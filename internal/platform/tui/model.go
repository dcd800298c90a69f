package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameModel is the Bubble Tea model that runs one game.
//
// Every TickMsg is one rendered frame: the wall time since the previous
// frame is handed to Game.Step, which runs as many fixed simulation ticks
// as that time covers.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	clock      frameClock
	now        func() time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel resets the game and wraps it in a model.
// Setup errors from Reset are returned before any UI starts.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (GameModel, error) {
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game refits its camera on the next Render.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.Press(msg, m.now(), &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu when game over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick runs one rendered frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.clock.Elapsed(now)
	m.keyMapper.Hold(now, &m.inputFrame)

	wasPaused := m.gameState.Paused
	result := m.game.Step(m.inputFrame, elapsed)
	m.gameState = result.State

	if m.gameState.Paused != wasPaused {
		m.keyMapper.ReleaseAll()
	}

	m.persist(result)

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// persist stores level clears as they happen and the run total once per
// game over. Storage failures are logged and never stop the game.
func (m *GameModel) persist(result core.StepResult) {
	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventLevelComplete:
			log.Info("level complete", "game", m.game.ID(), "level", ev.LevelID, "score", ev.Score, "ticks", ev.Ticks)
			if m.store != nil {
				if _, err := m.store.SaveLevelTime(m.game.ID(), ev.LevelID, ev.Score, ev.Ticks); err != nil {
					log.Warn("could not save level time", "err", err)
				}
			}
		case core.EventLifeLost:
			log.Debug("life lost", "game", m.game.ID(), "level", ev.LevelID)
		}
	}

	if !m.gameState.GameOver {
		// A restart begins a new run.
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		log.Warn("could not save score", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := config.UserDir("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("could not create screenshot directory", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// State returns the last game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewGameModel(game, store, cfg)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
