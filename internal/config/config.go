// Package config provides YAML-based tuning for the merge-drop game:
// physics scalars, merge gates, danger-line rules, capacities and the
// spawn-value distribution.
package config

// MergeConfig contains all tunables for a merge-drop session.
type MergeConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Merge   MergeRules    `yaml:"merge"`
	Danger  DangerConfig  `yaml:"danger"`
	Drop    DropConfig    `yaml:"drop"`
	Limits  LimitsConfig  `yaml:"limits"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Score   ScoreConfig   `yaml:"score"`
}

// PhysicsConfig defines the rigid-body tuning. Units are pixels, seconds
// and milliseconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	Restitution  float64 `yaml:"restitution"`
	Friction     float64 `yaml:"friction"`
	MaxSpeed     float64 `yaml:"max_speed"`
	SleepSpeed   float64 `yaml:"sleep_speed"`
	SleepAfterMs float64 `yaml:"sleep_after_ms"`
}

// MergeRules gates merge eligibility and times the merge animations.
// Discs colliding faster than the gates bounce instead of fusing.
type MergeRules struct {
	SpeedMax    float64 `yaml:"speed_max"`     // per-disc speed gate, px/s
	RelSpeedMax float64 `yaml:"rel_speed_max"` // relative speed gate, px/s
	GlideMs     float64 `yaml:"glide_ms"`      // merge-glide animation length
	GrowMs      float64 `yaml:"grow_ms"`       // spawn-grow animation length
}

// DangerConfig defines when a session ends.
type DangerConfig struct {
	GraceMs      float64 `yaml:"grace_ms"`      // newly spawned discs are exempt this long
	BandPx       float64 `yaml:"band_px"`       // stalemate band below the danger line
	StackCount   int     `yaml:"stack_count"`   // disc count that arms the stalemate check
	StackCleared int     `yaml:"stack_cleared"` // cleared discs in the band that end the session
}

// DropConfig tunes drop placement.
type DropConfig struct {
	CooldownMs  float64 `yaml:"cooldown_ms"`  // minimum time between drops
	SideSteps   int     `yaml:"side_steps"`   // stepped offsets tried beside the preview
	ZigzagSteps int     `yaml:"zigzag_steps"` // zig-zag fallback positions
}

// LimitsConfig fixes resource capacities.
type LimitsConfig struct {
	MaxDiscs         int `yaml:"max_discs"`
	ParticleCapacity int `yaml:"particle_capacity"`
}

// SpawnWeight is one entry of the spawn-value distribution.
type SpawnWeight struct {
	Value  int `yaml:"value"`
	Weight int `yaml:"weight"`
}

// SpawnConfig defines which values new discs spawn with and how often.
type SpawnConfig struct {
	Weights []SpawnWeight `yaml:"weights"`
}

// ScoreConfig tunes score persistence.
type ScoreConfig struct {
	BestSaveIntervalMs float64 `yaml:"best_save_interval_ms"`
}

// Sanitize replaces zero or negative fields with their defaults, so a
// partial YAML override does not zero out the physics.
func (c *MergeConfig) Sanitize() {
	d := DefaultMergeConfig()
	fallbackF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fallbackI := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}

	fallbackF(&c.Physics.Gravity, d.Physics.Gravity)
	fallbackF(&c.Physics.Damping, d.Physics.Damping)
	fallbackF(&c.Physics.Restitution, d.Physics.Restitution)
	fallbackF(&c.Physics.Friction, d.Physics.Friction)
	fallbackF(&c.Physics.MaxSpeed, d.Physics.MaxSpeed)
	fallbackF(&c.Physics.SleepSpeed, d.Physics.SleepSpeed)
	fallbackF(&c.Physics.SleepAfterMs, d.Physics.SleepAfterMs)

	fallbackF(&c.Merge.SpeedMax, d.Merge.SpeedMax)
	fallbackF(&c.Merge.RelSpeedMax, d.Merge.RelSpeedMax)
	fallbackF(&c.Merge.GlideMs, d.Merge.GlideMs)
	fallbackF(&c.Merge.GrowMs, d.Merge.GrowMs)

	fallbackF(&c.Danger.GraceMs, d.Danger.GraceMs)
	fallbackF(&c.Danger.BandPx, d.Danger.BandPx)
	fallbackI(&c.Danger.StackCount, d.Danger.StackCount)
	fallbackI(&c.Danger.StackCleared, d.Danger.StackCleared)

	fallbackF(&c.Drop.CooldownMs, d.Drop.CooldownMs)
	fallbackI(&c.Drop.SideSteps, d.Drop.SideSteps)
	fallbackI(&c.Drop.ZigzagSteps, d.Drop.ZigzagSteps)

	fallbackI(&c.Limits.MaxDiscs, d.Limits.MaxDiscs)
	fallbackI(&c.Limits.ParticleCapacity, d.Limits.ParticleCapacity)

	if len(c.Spawn.Weights) == 0 {
		c.Spawn.Weights = d.Spawn.Weights
	}
	fallbackF(&c.Score.BestSaveIntervalMs, d.Score.BestSaveIntervalMs)
}
