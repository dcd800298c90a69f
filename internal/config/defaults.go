package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:          0.3,
			TerminalVelocity: 8,
			TickMS:           10,
			MaxFrameMS:       250,
		},
		Control: ControlConfig{
			Speed:         4,
			AccelStart:    0.02,
			AccelChange:   0.06,
			AccelStop:     0.15,
			StopThreshold: 0.2,
			JumpImpulse:   -8,
			JumpCut:       -4,
		},
		Actor: ActorConfig{
			Width:  32,
			Height: 32,
		},
		Render: RenderConfig{
			CellWidth:  2,
			CellHeight: 1,
			HUDRows:    1,
		},
		Gameplay: GameplayConfig{
			Lives:        3,
			TimeLimit:    300,
			TimeScale:    1.0,
			CoinPoints:   100,
			GoalPoints:   1000,
			TimeBonus:    10,
			ClampToWorld: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
