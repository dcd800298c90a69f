package core

// RuntimeConfig is what the platform tells a game on Reset.
// The game derives its camera viewport from the screen size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Render frames per second driven by the platform (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Level    string // ID of the level being played
	GameOver bool   // Whether the game has ended
	Won      bool   // Whether the game ended by clearing the last level
	Paused   bool   // Whether the game is paused
}

// EventKind identifies a notable game event reported to the platform.
type EventKind int

const (
	EventLevelComplete EventKind = iota + 1 // Goal reached
	EventLifeLost                           // Actor fell out of the world or ran out of time
)

// Event is emitted by Game.Step when something the platform may persist happens.
type Event struct {
	Kind    EventKind
	LevelID string
	Score   int   // Score at the time of the event
	Ticks   int64 // Fixed ticks spent in the level
}

// StepResult is returned by Game.Step() after each rendered frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Ticks  int // Fixed simulation ticks executed for this frame
	Events []Event
}
