package config

import (
	_ "embed"
)

//go:embed defaults/mergedrop.yaml
var defaultMergeYAML []byte

// DefaultMergeConfig returns the canonical tuning. The same values live in
// defaults/mergedrop.yaml; this hardcoded copy is the last-resort fallback.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Physics: PhysicsConfig{
			Gravity:      520,
			Damping:      0.12,
			Restitution:  0.18,
			Friction:     0.08,
			MaxSpeed:     600,
			SleepSpeed:   6,
			SleepAfterMs: 450,
		},
		Merge: MergeRules{
			SpeedMax:    220,
			RelSpeedMax: 260,
			GlideMs:     300,
			GrowMs:      200,
		},
		Danger: DangerConfig{
			GraceMs:      800,
			BandPx:       30,
			StackCount:   12,
			StackCleared: 6,
		},
		Drop: DropConfig{
			CooldownMs:  300,
			SideSteps:   4,
			ZigzagSteps: 10,
		},
		Limits: LimitsConfig{
			MaxDiscs:         60,
			ParticleCapacity: 300,
		},
		Spawn: SpawnConfig{
			Weights: []SpawnWeight{
				{Value: 2, Weight: 46},
				{Value: 4, Weight: 30},
				{Value: 8, Weight: 16},
				{Value: 16, Weight: 8},
			},
		},
		Score: ScoreConfig{
			BestSaveIntervalMs: 1000,
		},
	}
}
