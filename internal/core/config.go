package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to size the physics board and for deterministic simulation.
type RuntimeConfig struct {
	BoardW   int   // Board width in pixels
	BoardH   int   // Board height in pixels
	Compact  bool  // Compact layout (small terminals): smaller disc radius regime
	TickRate int   // Initial simulation ticks per second hint (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		BoardW:   80,
		BoardH:   44,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
