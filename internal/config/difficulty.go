package config

import "math"

// DifficultyManager scales wave parameters from score or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// A disabled manager always reports level 0 so waves play as configured.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}
	progress = clampF(progress, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemySpeed scales a wave's base enemy speed.
func (d *DifficultyManager) EnemySpeed(base float64, score, ticks int) float64 {
	return base * (1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval shortens a wave's spawn interval towards
// base*interval_factor at max difficulty.
func (d *DifficultyManager) SpawnInterval(base float64, score, ticks int) float64 {
	factor := d.cfg.Scaling.IntervalFactor
	if factor <= 0 || factor > 1 {
		factor = 1
	}
	level := d.Level(score, ticks)
	return base * (1.0 - level*(1.0-factor))
}

// FireInterval shortens an enemy's fire interval as the fire rate increases.
func (d *DifficultyManager) FireInterval(base float64, score, ticks int) float64 {
	rate := 1.0 + d.Level(score, ticks)*d.cfg.Scaling.FireRateIncrease
	if rate <= 0 {
		return base
	}
	return base / rate
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
