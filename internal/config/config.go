// Package config provides YAML-based game configuration loading and
// difficulty management for surfjump.
package config

import (
	"errors"
	"fmt"
)

// SurfjumpConfig contains all configuration for the surfjump game.
type SurfjumpConfig struct {
	World      WorldConfig      `yaml:"world"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Platforms  PlatformsConfig  `yaml:"platforms"`
	Player     PlayerConfig     `yaml:"player"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the visible world window in world units.
type WorldConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

// SurfaceConfig defines the height field (water surface) parameters.
type SurfaceConfig struct {
	Segments         int     `yaml:"segments"`
	InitialDepth     float64 `yaml:"initial_depth"` // initial depths drawn from [-d, d]
	Restore          float64 `yaml:"restore"`       // pull toward the baseline
	Couple           float64 `yaml:"couple"`        // pull from neighbor samples
	Damping          float64 `yaml:"damping"`       // velocity factor per tick
	PerturbChance    float64 `yaml:"perturb_chance"`
	PerturbMagnitude float64 `yaml:"perturb_magnitude"`
}

// TierConfig is one {gap, radius} distribution, in viewport-width units.
type TierConfig struct {
	Name       string  `yaml:"name"`
	GapMin     float64 `yaml:"gap_min"`
	GapSpan    float64 `yaml:"gap_span"`
	RadiusMin  float64 `yaml:"radius_min"`
	RadiusSpan float64 `yaml:"radius_span"`
}

// PlatformsConfig defines platform generation and lifecycle parameters.
type PlatformsConfig struct {
	Tiers []TierConfig `yaml:"tiers"`
	// Table holds one row of tier names per difficulty value.
	Table [][]string `yaml:"table"`
	// ExtendHardest appends the hardest tier to the last row once per
	// difficulty step past the end of the table.
	ExtendHardest      bool    `yaml:"extend_hardest"`
	StartRadius        float64 `yaml:"start_radius"`        // viewport-width units
	CollisionTolerance float64 `yaml:"collision_tolerance"` // viewport-width units
	SinkRate           float64 `yaml:"sink_rate"`
	SinkThreshold      float64 `yaml:"sink_threshold"`
	RetireBehind       float64 `yaml:"retire_behind"` // viewport widths behind the camera
}

// PlayerConfig defines player movement parameters.
type PlayerConfig struct {
	Accel               float64 `yaml:"accel"`
	MaxVel              float64 `yaml:"max_vel"`
	MaxVelBonusPerLevel float64 `yaml:"max_vel_bonus_per_level"`
	IdleDecay           float64 `yaml:"idle_decay"`
	MaxJumpVel          float64 `yaml:"max_jump_vel"`
	Gravity             float64 `yaml:"gravity"` // subtracted from yVel every tick
	StickOffset         float64 `yaml:"stick_offset"`
	ImpactScale         float64 `yaml:"impact_scale"`
	SwipeThreshold      float64 `yaml:"swipe_threshold"` // display units, negative = upward
	SwipeFull           float64 `yaml:"swipe_full"`
	BurstVel            float64 `yaml:"burst_vel"`
	ExplodeAccel        float64 `yaml:"explode_accel"`
	ExplodeFade         float64 `yaml:"explode_fade"`
}

// ScoringConfig defines how landings turn into score and levels.
type ScoringConfig struct {
	LandingPoints int `yaml:"landing_points"` // multiplied by level+1
	StreakLength  int `yaml:"streak_length"`  // landings per level-up
}

// DifficultyConfig defines the difficulty ratchet.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
	Initial int  `yaml:"initial"`
	Max     int  `yaml:"max"` // 0 means unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Tier looks up a tier by name.
func (p PlatformsConfig) Tier(name string) (TierConfig, bool) {
	for _, t := range p.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return TierConfig{}, false
}

// Hardest returns the last configured tier.
func (p PlatformsConfig) Hardest() TierConfig {
	if len(p.Tiers) == 0 {
		return TierConfig{}
	}
	return p.Tiers[len(p.Tiers)-1]
}

// Validate reports configuration values the simulation cannot run with.
func (c SurfjumpConfig) Validate() error {
	var errs []error
	if c.World.ViewportWidth <= 0 {
		errs = append(errs, errors.New("world.viewport_width must be positive"))
	}
	if c.Surface.Segments < 2 {
		errs = append(errs, fmt.Errorf("surface.segments must be at least 2, got %d", c.Surface.Segments))
	}
	if c.Surface.PerturbChance < 0 || c.Surface.PerturbChance > 1 {
		errs = append(errs, fmt.Errorf("surface.perturb_chance must be in [0, 1], got %g", c.Surface.PerturbChance))
	}
	if len(c.Platforms.Tiers) == 0 {
		errs = append(errs, errors.New("platforms.tiers is empty"))
	}
	if len(c.Platforms.Table) == 0 {
		errs = append(errs, errors.New("platforms.table is empty"))
	}
	for i, row := range c.Platforms.Table {
		if len(row) == 0 {
			errs = append(errs, fmt.Errorf("platforms.table[%d] is empty", i))
		}
		for _, name := range row {
			if _, ok := c.Platforms.Tier(name); !ok {
				errs = append(errs, fmt.Errorf("platforms.table[%d]: unknown tier %q", i, name))
			}
		}
	}
	if c.Platforms.SinkThreshold <= 0 {
		errs = append(errs, errors.New("platforms.sink_threshold must be positive"))
	}
	if c.Platforms.CollisionTolerance < 0 {
		errs = append(errs, errors.New("platforms.collision_tolerance must not be negative"))
	}
	if c.Player.MaxVel <= 0 {
		errs = append(errs, errors.New("player.max_vel must be positive"))
	}
	if c.Player.SwipeFull <= 0 {
		errs = append(errs, errors.New("player.swipe_full must be positive"))
	}
	if c.Scoring.StreakLength < 1 {
		errs = append(errs, errors.New("scoring.streak_length must be at least 1"))
	}
	return errors.Join(errs...)
}
