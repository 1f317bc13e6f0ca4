package config

// DifficultyManager tracks the difficulty value that drives platform generation.
// Difficulty only ever grows: losing a level never makes the game easier again.
type DifficultyManager struct {
	cfg   DifficultyConfig
	value int
}

// NewDifficultyManager creates a new difficulty manager at the configured initial value.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.Reset()
	return d
}

// Reset returns the difficulty to its initial value.
func (d *DifficultyManager) Reset() {
	d.value = max(0, d.cfg.Initial)
	if d.cfg.Max > 0 && d.value > d.cfg.Max {
		d.value = d.cfg.Max
	}
}

// Value returns the current difficulty.
func (d *DifficultyManager) Value() int {
	return d.value
}

// Raise increases the difficulty by delta and returns the new value.
// Non-positive deltas are ignored, as is any call while progression is disabled.
func (d *DifficultyManager) Raise(delta int) int {
	if !d.cfg.Enabled || delta <= 0 {
		return d.value
	}
	d.value += delta
	if d.cfg.Max > 0 && d.value > d.cfg.Max {
		d.value = d.cfg.Max
	}
	return d.value
}
