package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the duration of one tick in seconds.
// Falls back to 1/60 when the tick rate is unset.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Highest level reached this run
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind names a semantic game event that outer layers (sound, logs) react to.
type EventKind string

const (
	EventJump      EventKind = "jump"
	EventLand      EventKind = "land"
	EventLanded    EventKind = "landed"
	EventMissed    EventKind = "missed"
	EventLevelUp   EventKind = "levelUp"
	EventLevelDown EventKind = "levelDown"
	EventGameOver  EventKind = "gameOver"

	// EventSelect is raised by menus, not by games.
	EventSelect EventKind = "select"
)

// Event is emitted by a game during a tick.
type Event struct {
	Kind  EventKind `json:"kind"`
	Level int       `json:"level"` // Level after the event
	Rate  float64   `json:"rate"`  // Suggested playback rate, 1 = normal
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
