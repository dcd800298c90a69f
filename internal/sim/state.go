// Package sim drives the actor, tile grid and camera at a fixed timestep.
// Wall-clock time is accumulated and consumed in whole ticks so the same tick
// sequence runs regardless of how often frames are rendered.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

var (
	// ErrInvalidConfig is returned for unusable loop or control settings.
	ErrInvalidConfig = errors.New("sim: invalid config")
	// ErrSpawnOverlap is returned when the actor starts inside a solid tile.
	ErrSpawnOverlap = errors.New("sim: actor overlaps a solid tile")
)

// Default loop timing.
const (
	DefaultTick     = 10 * time.Millisecond
	DefaultMaxFrame = 250 * time.Millisecond
)

// Config holds the simulation parameters.
type Config struct {
	Tick         time.Duration
	MaxFrame     time.Duration // 0 disables the per-frame clamp
	Physics      physics.Resolver
	Control      Control
	ClampToWorld bool // keep the actor inside the world horizontally
}

// DefaultConfig returns the stock simulation settings.
func DefaultConfig() Config {
	return Config{
		Tick:         DefaultTick,
		MaxFrame:     DefaultMaxFrame,
		Physics:      physics.DefaultResolver(),
		Control:      DefaultControl(),
		ClampToWorld: true,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %v", ErrInvalidConfig, c.Tick)
	}
	if c.MaxFrame < 0 {
		return fmt.Errorf("%w: max frame must not be negative", ErrInvalidConfig)
	}
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	return c.Control.Validate()
}

// State is the whole simulation: one actor in one grid seen by one camera.
// It is owned by the driver and is not safe for concurrent use.
type State struct {
	cfg     Config
	grid    *tilemap.Grid
	actor   *physics.Actor
	cam     *camera.Camera
	lag     time.Duration
	ticks   int64
	contact physics.Contact
}

// New validates the setup and returns a ready simulation with the camera
// centered on the actor.
func New(grid *tilemap.Grid, actor *physics.Actor, cam *camera.Camera, cfg Config) (*State, error) {
	if grid == nil || actor == nil || cam == nil {
		return nil, fmt.Errorf("%w: grid, actor and camera are required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if grid.AnySolid(actor.Rect()) {
		return nil, fmt.Errorf("%w at (%v, %v)", ErrSpawnOverlap, actor.X, actor.Y)
	}

	cam.CenterOn(actor.Rect())
	return &State{cfg: cfg, grid: grid, actor: actor, cam: cam}, nil
}

// ApplyIntent updates the actor's velocity from this frame's input.
// Call it once per frame before Advance.
func (s *State) ApplyIntent(in Intent) {
	s.cfg.Control.Apply(s.actor, in)
}

// Advance adds elapsed wall time to the accumulator and runs as many fixed
// ticks as it covers. It returns the number of ticks run.
func (s *State) Advance(elapsed time.Duration) int {
	return s.AdvanceWith(elapsed, nil)
}

// AdvanceWith is Advance with a hook called after every tick. When the hook
// returns true no further ticks run this frame and the leftover lag stays in
// the accumulator. A nil hook behaves like Advance.
func (s *State) AdvanceWith(elapsed time.Duration, afterTick func() (stop bool)) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if s.cfg.MaxFrame > 0 && elapsed > s.cfg.MaxFrame {
		elapsed = s.cfg.MaxFrame
	}

	s.lag += elapsed
	n := 0
	for s.lag >= s.cfg.Tick {
		s.Tick()
		s.lag -= s.cfg.Tick
		n++
		if afterTick != nil && afterTick() {
			break
		}
	}
	return n
}

// Tick runs exactly one fixed step: gravity, collision, world clamp and
// camera follow.
func (s *State) Tick() {
	s.contact = s.cfg.Physics.Step(s.actor, s.grid)

	if s.cfg.ClampToWorld {
		s.clampToWorld()
	}

	s.cam.CenterOn(s.actor.Rect())
	s.ticks++
}

func (s *State) clampToWorld() {
	b := s.grid.Bounds()
	maxX := float64(b.Right() - s.actor.W)
	if s.actor.X < float64(b.X) {
		s.actor.X = float64(b.X)
		s.actor.DX = 0
		s.contact.Left = true
	} else if s.actor.X > maxX {
		s.actor.X = maxX
		s.actor.DX = 0
		s.contact.Right = true
	}
}

// Respawn moves the actor to (x, y) at rest and drops any pending lag.
func (s *State) Respawn(x, y float64) error {
	next := *s.actor
	next.X, next.Y = x, y
	next.Stop()
	next.OnGround = false
	if s.grid.AnySolid(next.Rect()) {
		return fmt.Errorf("%w at (%v, %v)", ErrSpawnOverlap, x, y)
	}

	*s.actor = next
	s.lag = 0
	s.contact = physics.Contact{}
	s.cam.CenterOn(s.actor.Rect())
	return nil
}

// Alpha returns how far the accumulator is into the next tick, in [0, 1).
func (s *State) Alpha() float64 {
	return float64(s.lag) / float64(s.cfg.Tick)
}

// Actor returns the simulated actor.
func (s *State) Actor() *physics.Actor { return s.actor }

// Grid returns the tile grid.
func (s *State) Grid() *tilemap.Grid { return s.grid }

// Camera returns the camera.
func (s *State) Camera() *camera.Camera { return s.cam }

// Config returns the simulation settings.
func (s *State) Config() Config { return s.cfg }

// Ticks returns the number of fixed ticks run so far.
func (s *State) Ticks() int64 { return s.ticks }

// LastContact returns the sides blocked during the most recent tick.
func (s *State) LastContact() physics.Contact { return s.contact }
