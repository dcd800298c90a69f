package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// scriptedGame replays a fixed list of step results.
type scriptedGame struct {
	resetErr error
	script   []core.StepResult
	steps    int
	elapsed  []time.Duration
	inputs   []core.InputFrame
}

func (g *scriptedGame) ID() string                     { return "platformer" }
func (g *scriptedGame) Title() string                  { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) error { return g.resetErr }
func (g *scriptedGame) Render(dst *core.Screen)        { dst.DrawText(0, 0, "scripted") }

func (g *scriptedGame) State() core.GameState {
	if g.steps == 0 {
		return core.GameState{}
	}
	return g.script[g.steps-1].State
}

func (g *scriptedGame) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.elapsed = append(g.elapsed, elapsed)
	g.inputs = append(g.inputs, in.Clone())
	res := g.script[g.steps%len(g.script)]
	g.steps++
	return res
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel, at time.Time) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg(at))
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm
}

func TestNewGameModelResetError(t *testing.T) {
	boom := errors.New("no levels")
	_, err := NewGameModel(&scriptedGame{resetErr: boom}, nil, core.DefaultConfig())
	if !errors.Is(err, boom) {
		t.Errorf("NewGameModel() error = %v, expected the Reset error", err)
	}
}

func TestGameModelElapsed(t *testing.T) {
	g := &scriptedGame{script: []core.StepResult{{}}}
	m, err := NewGameModel(g, nil, core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGameModel() error = %v", err)
	}

	start := time.Unix(1000, 0)
	m = tick(t, m, start)
	m = tick(t, m, start.Add(16*time.Millisecond))
	m = tick(t, m, start.Add(50*time.Millisecond))

	expected := []time.Duration{0, 16 * time.Millisecond, 34 * time.Millisecond}
	for i, d := range expected {
		if g.elapsed[i] != d {
			t.Errorf("frame %d elapsed = %v, expected %v", i, g.elapsed[i], d)
		}
	}
}

func TestGameModelHeldInput(t *testing.T) {
	g := &scriptedGame{script: []core.StepResult{{}}}
	m, _ := NewGameModel(g, nil, core.DefaultConfig())
	start := time.Unix(1000, 0)
	m.now = func() time.Time { return start }

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(GameModel)

	m = tick(t, m, start.Add(10*time.Millisecond))
	m = tick(t, m, start.Add(100*time.Millisecond))
	m = tick(t, m, start.Add(time.Second))

	if !g.inputs[0].Has(core.ActionRight) || !g.inputs[1].Has(core.ActionRight) {
		t.Error("Right should be held for frames within the hold window")
	}
	if g.inputs[2].Has(core.ActionRight) {
		t.Error("Right should be released once the hold expires")
	}
}

func TestGameModelPersists(t *testing.T) {
	store := openStore(t)
	playing := core.GameState{Score: 1500, Level: "01"}
	over := core.GameState{Score: 2600, Level: "02", GameOver: true}

	g := &scriptedGame{script: []core.StepResult{
		{State: playing, Events: []core.Event{{Kind: core.EventLevelComplete, LevelID: "01", Score: 1500, Ticks: 4000}}},
		{State: playing, Events: []core.Event{{Kind: core.EventLifeLost, LevelID: "02"}}},
		{State: over},
		{State: over},
		{State: core.GameState{}}, // restarted
		{State: over},
	}}
	m, err := NewGameModel(g, store, core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGameModel() error = %v", err)
	}

	start := time.Unix(1000, 0)
	for i := range g.script {
		m = tick(t, m, start.Add(time.Duration(i)*16*time.Millisecond))
	}

	times, err := store.BestTimes("platformer", "01", 10)
	if err != nil {
		t.Fatalf("BestTimes() error = %v", err)
	}
	if len(times) != 1 || times[0].Ticks != 4000 || times[0].Score != 1500 {
		t.Errorf("BestTimes() = %+v, expected the level clear", times)
	}

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	// One save per game over, not per frame.
	if len(scores) != 2 {
		t.Errorf("TopScores() = %d entries, expected 2", len(scores))
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &scriptedGame{script: []core.StepResult{{State: core.GameState{Paused: true}}}}
	m, _ := NewGameModel(g, nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if next.(GameModel).BackToMenu() {
		t.Fatal("Esc while playing should not leave the game")
	}

	m = tick(t, m, time.Unix(1000, 0))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(GameModel).BackToMenu() || cmd == nil {
		t.Error("Esc while paused should go back to the menu")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() = %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") || !strings.Contains(lines[1], "ef") {
		t.Errorf("RenderScreen() = %q", out)
	}
}
