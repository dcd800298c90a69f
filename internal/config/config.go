// Package config provides YAML/TOML-based configuration loading and
// difficulty presets for the platformer.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics  PhysicsConfig  `yaml:"physics" toml:"physics"`
	Control  ControlConfig  `yaml:"control" toml:"control"`
	Actor    ActorConfig    `yaml:"actor" toml:"actor"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Gameplay GameplayConfig `yaml:"gameplay" toml:"gameplay"`
}

// PhysicsConfig defines gravity and the fixed timestep.
// Velocities are in world units per tick.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity" toml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity" toml:"terminal_velocity"`
	TickMS           int     `yaml:"tick_ms" toml:"tick_ms"`
	MaxFrameMS       int     `yaml:"max_frame_ms" toml:"max_frame_ms"`
}

// ControlConfig defines how input accelerates the actor.
type ControlConfig struct {
	Speed         float64 `yaml:"speed" toml:"speed"`
	AccelStart    float64 `yaml:"accel_start" toml:"accel_start"`
	AccelChange   float64 `yaml:"accel_change" toml:"accel_change"`
	AccelStop     float64 `yaml:"accel_stop" toml:"accel_stop"`
	StopThreshold float64 `yaml:"stop_threshold" toml:"stop_threshold"`
	JumpImpulse   float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	JumpCut       float64 `yaml:"jump_cut" toml:"jump_cut"`
}

// ActorConfig defines the actor's collision box in world units.
type ActorConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// RenderConfig defines how world tiles map to terminal cells.
type RenderConfig struct {
	CellWidth  int `yaml:"cell_width" toml:"cell_width"`   // characters per tile horizontally
	CellHeight int `yaml:"cell_height" toml:"cell_height"` // rows per tile vertically
	HUDRows    int `yaml:"hud_rows" toml:"hud_rows"`
}

// GameplayConfig defines scoring, lives and timing.
type GameplayConfig struct {
	Lives        int     `yaml:"lives" toml:"lives"`
	TimeLimit    int     `yaml:"time_limit" toml:"time_limit"` // seconds, for levels without their own
	TimeScale    float64 `yaml:"time_scale" toml:"time_scale"` // multiplies every level's time limit
	CoinPoints   int     `yaml:"coin_points" toml:"coin_points"`
	GoalPoints   int     `yaml:"goal_points" toml:"goal_points"`
	TimeBonus    int     `yaml:"time_bonus" toml:"time_bonus"` // points per second left
	ClampToWorld bool    `yaml:"clamp_to_world" toml:"clamp_to_world"`
}

// Validate reports values the game cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.TickMS <= 0:
		return fmt.Errorf("%w: physics.tick_ms must be positive", ErrInvalid)
	case c.Physics.MaxFrameMS < 0:
		return fmt.Errorf("%w: physics.max_frame_ms must not be negative", ErrInvalid)
	case c.Physics.TerminalVelocity < 0:
		return fmt.Errorf("%w: physics.terminal_velocity must not be negative", ErrInvalid)
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return fmt.Errorf("%w: actor size must be positive", ErrInvalid)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: render cell size must be positive", ErrInvalid)
	case c.Render.HUDRows < 0:
		return fmt.Errorf("%w: render.hud_rows must not be negative", ErrInvalid)
	case c.Gameplay.Lives < 0:
		return fmt.Errorf("%w: gameplay.lives must not be negative", ErrInvalid)
	case c.Gameplay.TimeScale <= 0:
		return fmt.Errorf("%w: gameplay.time_scale must be positive", ErrInvalid)
	}

	if err := c.SimConfig().Control.Validate(); err != nil {
		return fmt.Errorf("%w: control: %v", ErrInvalid, err)
	}
	return nil
}

// SimConfig converts the file settings into simulation parameters.
func (c PlatformerConfig) SimConfig() sim.Config {
	return sim.Config{
		Tick:     time.Duration(c.Physics.TickMS) * time.Millisecond,
		MaxFrame: time.Duration(c.Physics.MaxFrameMS) * time.Millisecond,
		Physics: physics.Resolver{
			Gravity:          c.Physics.Gravity,
			TerminalVelocity: c.Physics.TerminalVelocity,
		},
		Control: sim.Control{
			Speed:         c.Control.Speed,
			AccelStart:    c.Control.AccelStart,
			AccelChange:   c.Control.AccelChange,
			AccelStop:     c.Control.AccelStop,
			StopThreshold: c.Control.StopThreshold,
			JumpImpulse:   c.Control.JumpImpulse,
			JumpCut:       c.Control.JumpCut,
		},
		ClampToWorld: c.Gameplay.ClampToWorld,
	}
}

// LevelTimeLimit returns the scaled time limit in seconds for a level that
// declares levelLimit (0 falls back to the configured default).
func (c PlatformerConfig) LevelTimeLimit(levelLimit int) int {
	if levelLimit <= 0 {
		levelLimit = c.Gameplay.TimeLimit
	}
	return int(float64(levelLimit)*c.Gameplay.TimeScale + 0.5)
}
