package core

// RuntimeConfig contains configuration passed to games at initialization.
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

// FrameDelta returns the fixed simulation step in seconds.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Mode     string // Current game mode name ("title", "playing", ...)
	Score    int
	Stage    string
	Wave     int  // 1-based wave number within the stage
	Cleared  bool // Stage cleared
	GameOver bool // Player destroyed and game over shown
	Paused   bool
}

// Finished reports whether the run has reached a terminal outcome.
func (s GameState) Finished() bool {
	return s.Cleared || s.GameOver
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	Quit  bool // Game asked the platform to exit
}
