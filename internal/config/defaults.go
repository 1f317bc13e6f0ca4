package config

import (
	_ "embed"
)

//go:embed defaults/surfjump.yaml
var defaultSurfjumpYAML []byte

// DefaultSurfjumpConfig returns the hardcoded surfjump configuration.
// It mirrors defaults/surfjump.yaml and is used when the embedded file fails to parse.
func DefaultSurfjumpConfig() SurfjumpConfig {
	return SurfjumpConfig{
		World: WorldConfig{
			ViewportWidth:  4.0,
			ViewportHeight: 2.0,
		},
		Surface: SurfaceConfig{
			Segments:         36,
			InitialDepth:     0.09,
			Restore:          40,
			Couple:           10,
			Damping:          0.98,
			PerturbChance:    0.04,
			PerturbMagnitude: 0.6,
		},
		Platforms: PlatformsConfig{
			Tiers:              DefaultTiers(),
			Table:              DefaultTierTable(),
			ExtendHardest:      false,
			StartRadius:        0.1,
			CollisionTolerance: 0.015,
			SinkRate:           0.05,
			SinkThreshold:      0.1,
			RetireBehind:       1.0,
		},
		Player: PlayerConfig{
			Accel:               8,
			MaxVel:              2.4,
			MaxVelBonusPerLevel: 0.15,
			IdleDecay:           0.9,
			MaxJumpVel:          6,
			Gravity:             0.5,
			StickOffset:         0.08,
			ImpactScale:         0.02,
			SwipeThreshold:      -32,
			SwipeFull:           96,
			BurstVel:            9,
			ExplodeAccel:        30,
			ExplodeFade:         1.5,
		},
		Scoring: ScoringConfig{
			LandingPoints: 10,
			StreakLength:  5,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Initial: 0,
			Max:     0,
		},
	}
}

// DefaultTiers returns the five built-in tiers, easiest first.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{Name: "t0", GapMin: 0.04, GapSpan: 0.04, RadiusMin: 0.10, RadiusSpan: 0.05},
		{Name: "t1", GapMin: 0.08, GapSpan: 0.04, RadiusMin: 0.08, RadiusSpan: 0.04},
		{Name: "t2", GapMin: 0.12, GapSpan: 0.04, RadiusMin: 0.06, RadiusSpan: 0.03},
		{Name: "t3", GapMin: 0.16, GapSpan: 0.05, RadiusMin: 0.05, RadiusSpan: 0.02},
		{Name: "t4", GapMin: 0.20, GapSpan: 0.05, RadiusMin: 0.04, RadiusSpan: 0.02},
	}
}

// DefaultTierTable returns the difficulty-indexed tier rows.
func DefaultTierTable() [][]string {
	return [][]string{
		{"t0", "t0", "t1"},
		{"t0", "t1", "t1"},
		{"t1", "t1", "t2"},
		{"t1", "t2", "t2"},
		{"t2", "t2", "t3"},
		{"t2", "t3", "t3"},
		{"t3", "t3", "t4"},
		{"t3", "t4", "t4"},
	}
}
