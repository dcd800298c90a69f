// Package registry maps mode IDs ("platformer", "practice") to factories.
// The platformer package registers its modes from init, and the CLI, the
// menu, the scoreboard and the SSH sessions look them up by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrUnknownMode is returned by Create for an ID nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is one playable mode as the terminal front end sees it. It holds
// only game rules; key mapping, frame timing and drawing to the terminal
// stay in the platform layer.
type Game interface {
	// ID is the mode ID used on the command line and as the score key.
	ID() string

	// Title is the name shown in menus and on the scoreboard.
	Title() string

	// Reset starts a fresh run sized to the terminal. It is called again on
	// restart, and fails when levels or config cannot be loaded.
	Reset(cfg core.RuntimeConfig) error

	// Step consumes one frame: the input held this frame and the wall time
	// since the previous frame. The game runs as many fixed ticks as the
	// elapsed time covers and reports the result.
	Step(in core.InputFrame, elapsed time.Duration) core.StepResult

	// Render draws the level, runner and HUD into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a new, not yet Reset, instance of a mode.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. Registering the same ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	// Factories must be cheap: the title comes from a throwaway instance.
	modes[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(modes))
	for id, e := range modes {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create returns a new instance of the mode id. Each SSH session and each
// menu pick gets its own instance.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return e.factory(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
