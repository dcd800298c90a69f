// Package platformer provides the side-scrolling platformer game:
// a campaign through tile levels with coins, a goal flag, lives and a timer.
package platformer

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "platformer"
	ModePractice Mode = "practice"
)

// ErrNoLevels is returned by Reset when the level source holds no levels.
var ErrNoLevels = errors.New("platformer: no levels found")

// Options selects where levels and settings come from.
type Options struct {
	ConfigPath string                   // empty searches the default locations
	Config     *config.PlatformerConfig // used instead of loading when set
	LevelsDir  string                   // empty uses the bundled levels
	LevelID    string                   // start at this level instead of the first
	Difficulty config.DifficultyPreset
}

// Package-level options, set by the CLI and menu before a game starts.
var selectedOptions Options

// SetOptions sets the options used by games that were not configured directly.
func SetOptions(o Options) {
	selectedOptions = o
}

// GetOptions returns the currently selected options.
func GetOptions() Options {
	return selectedOptions
}

// Game implements the platformer.
type Game struct {
	mode Mode
	opts *Options

	cfg        config.PlatformerConfig
	levels     []level.Level
	startIndex int
	levelIndex int

	state *sim.State
	spawn core.Rect
	anim  runAnimation

	// Screen dimensions
	screenW int
	screenH int

	// Status
	score      int
	lives      int
	coins      int
	levelTicks int64
	limitTicks int64 // 0 means no timer
	gameOver   bool
	won        bool
	paused     bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewPractice creates a practice game: no timer and unlimited lives.
func NewPractice() *Game {
	return &Game{mode: ModePractice}
}

func init() {
	registry.Register(string(ModeCampaign), func() registry.Game {
		return New()
	})
	registry.Register(string(ModePractice), func() registry.Game {
		return NewPractice()
	})
}

// Configure sets options for this instance, overriding the package-level ones.
func (g *Game) Configure(o Options) {
	g.opts = &o
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Platformer (Practice)"
	}
	return "Platformer"
}

func (g *Game) options() Options {
	if g.opts != nil {
		return *g.opts
	}
	return selectedOptions
}

// Reset loads configuration and levels and starts from the selected level.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	opts := g.options()
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.state = nil

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	g.cfg = cfg

	loader := level.Bundled()
	if opts.LevelsDir != "" {
		loader = level.NewDirLoader(opts.LevelsDir)
	}
	levels, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}
	if len(levels) == 0 {
		return ErrNoLevels
	}

	// Every level must build with the configured actor before play starts.
	for _, lvl := range levels {
		if _, _, err := lvl.Build(cfg.Actor.Width, cfg.Actor.Height); err != nil {
			return fmt.Errorf("platformer: level %s: %w", lvl.ID, err)
		}
	}
	g.levels = levels

	g.startIndex = 0
	if opts.LevelID != "" {
		g.startIndex = -1
		for i, lvl := range levels {
			if lvl.ID == opts.LevelID {
				g.startIndex = i
				break
			}
		}
		if g.startIndex < 0 {
			return fmt.Errorf("platformer: %w: %s", level.ErrNotFound, opts.LevelID)
		}
	}

	return g.restart()
}

func loadConfig(opts Options) (config.PlatformerConfig, error) {
	var cfg config.PlatformerConfig
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.LoadPlatformer(opts.ConfigPath)
		if err != nil {
			return config.PlatformerConfig{}, err
		}
		cfg = loaded
	}

	preset, err := config.ParsePreset(string(opts.Difficulty))
	if err != nil {
		return config.PlatformerConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.PlatformerConfig{}, err
	}
	return cfg, nil
}

// restart begins a new run with the already loaded levels.
func (g *Game) restart() error {
	g.score = 0
	g.coins = 0
	g.lives = g.cfg.Gameplay.Lives
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelIndex = g.startIndex
	return g.loadLevel()
}

// loadLevel builds the grid, actor and camera for the current level.
func (g *Game) loadLevel() error {
	lvl := g.levels[g.levelIndex]

	grid, spawn, err := lvl.Build(g.cfg.Actor.Width, g.cfg.Actor.Height)
	if err != nil {
		return fmt.Errorf("platformer: level %s: %w", lvl.ID, err)
	}

	viewW, viewH := g.viewSize(grid)
	cam := camera.New(0, 0, viewW, viewH, grid.Bounds())
	actor := physics.NewActor(float64(spawn.X), float64(spawn.Y), spawn.W, spawn.H)

	state, err := sim.New(grid, actor, cam, g.cfg.SimConfig())
	if err != nil {
		return fmt.Errorf("platformer: level %s: %w", lvl.ID, err)
	}

	g.state = state
	g.spawn = spawn
	g.anim = runAnimation{}
	g.levelTicks = 0
	g.limitTicks = 0
	if g.mode == ModeCampaign {
		limit := time.Duration(g.cfg.LevelTimeLimit(lvl.TimeLimit)) * time.Second
		g.limitTicks = int64(limit / g.cfg.SimConfig().Tick)
	}

	log.Debug("level loaded", "level", lvl.ID, "cols", grid.Width(), "rows", grid.Height())
	return nil
}

// Level returns the level being played.
func (g *Game) Level() level.Level {
	if g.levelIndex < 0 || g.levelIndex >= len(g.levels) {
		return level.Level{}
	}
	return g.levels[g.levelIndex]
}

// Sim returns the running simulation, or nil before Reset.
func (g *Game) Sim() *sim.State {
	return g.state
}

// Lives returns the remaining lives.
func (g *Game) Lives() int {
	return g.lives
}

// Step consumes one frame of input and elapsed wall time.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver && len(g.levels) > 0 {
		if err := g.restart(); err != nil {
			log.Error("restart failed", "err", err)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.state == nil {
		return core.StepResult{State: g.State()}
	}

	g.state.ApplyIntent(IntentFrom(in))

	// Coins, goal, falls and the timer are checked after every tick so a
	// long frame cannot skip past them.
	var events []core.Event
	n := g.state.AdvanceWith(elapsed, func() bool {
		g.levelTicks++
		g.collectCoins()

		a := g.state.Actor()
		switch {
		case g.touchesGoal():
			events = append(events, g.completeLevel())
		case a.Y >= float64(g.state.Grid().Bounds().Bottom()):
			events = append(events, g.loseLife("fell"))
		case g.limitTicks > 0 && g.levelTicks >= g.limitTicks:
			events = append(events, g.loseLife("time"))
		default:
			return false
		}
		return true
	})

	if len(events) == 0 {
		a := g.state.Actor()
		g.anim.Advance(elapsed, a.OnGround && a.DX != 0)
	}

	return core.StepResult{State: g.State(), Ticks: n, Events: events}
}

// IntentFrom maps one frame of semantic actions to movement intent.
func IntentFrom(in core.InputFrame) sim.Intent {
	var it sim.Intent
	if in.Has(core.ActionLeft) {
		it.Move--
	}
	if in.Has(core.ActionRight) {
		it.Move++
	}
	it.JumpPressed = in.Has(core.ActionJump)
	it.JumpReleased = in.Has(core.ActionJumpRelease)
	return it
}

// collectCoins clears every coin the actor overlaps.
func (g *Game) collectCoins() {
	grid := g.state.Grid()
	var taken []core.Rect
	grid.ForEachOverlapping(g.state.Actor().Rect(), func(t tilemap.Tile, cell core.Rect) {
		if level.IsCoin(t) {
			taken = append(taken, cell)
		}
	})

	for _, cell := range taken {
		col, row := cell.X/grid.TileWidth(), cell.Y/grid.TileHeight()
		if err := grid.SetTile(col, row, tilemap.Empty()); err != nil {
			continue
		}
		g.coins++
		g.score += g.cfg.Gameplay.CoinPoints
	}
}

func (g *Game) touchesGoal() bool {
	found := false
	g.state.Grid().ForEachOverlapping(g.state.Actor().Rect(), func(t tilemap.Tile, _ core.Rect) {
		if level.IsGoal(t) {
			found = true
		}
	})
	return found
}

// TimeLeft returns the time remaining on the level timer, or 0 without one.
func (g *Game) TimeLeft() time.Duration {
	if g.limitTicks <= 0 || g.state == nil {
		return 0
	}
	left := g.limitTicks - g.levelTicks
	if left < 0 {
		left = 0
	}
	return time.Duration(left) * g.state.Config().Tick
}

func (g *Game) completeLevel() core.Event {
	lvl := g.levels[g.levelIndex]
	bonus := int(g.TimeLeft()/time.Second) * g.cfg.Gameplay.TimeBonus
	g.score += g.cfg.Gameplay.GoalPoints + bonus

	ev := core.Event{
		Kind:    core.EventLevelComplete,
		LevelID: lvl.ID,
		Score:   g.score,
		Ticks:   g.levelTicks,
	}
	log.Info("level complete", "level", lvl.ID, "score", g.score, "ticks", g.levelTicks, "bonus", bonus)

	g.levelIndex++
	if g.levelIndex >= len(g.levels) {
		g.levelIndex = len(g.levels) - 1
		g.won = true
		g.gameOver = true
		return ev
	}

	if err := g.loadLevel(); err != nil {
		log.Error("cannot load next level", "err", err)
		g.gameOver = true
	}
	return ev
}

func (g *Game) loseLife(cause string) core.Event {
	lvl := g.levels[g.levelIndex]
	if g.mode == ModeCampaign {
		g.lives--
	}

	ev := core.Event{
		Kind:    core.EventLifeLost,
		LevelID: lvl.ID,
		Score:   g.score,
		Ticks:   g.levelTicks,
	}
	log.Debug("life lost", "level", lvl.ID, "cause", cause, "lives", g.lives)

	if g.mode == ModeCampaign && g.lives <= 0 {
		g.gameOver = true
		return ev
	}

	if err := g.state.Respawn(float64(g.spawn.X), float64(g.spawn.Y)); err != nil {
		log.Error("respawn failed", "err", err)
		g.gameOver = true
		return ev
	}
	g.levelTicks = 0
	g.anim = runAnimation{}
	return ev
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.Level().ID,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}
