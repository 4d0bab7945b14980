package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the built-in configuration. It mirrors
// defaults/shooter.yaml and is used when the embedded file cannot be parsed.
func DefaultShooterConfig() ShooterConfig {
	mix := func() []DistributionEntry {
		return []DistributionEntry{
			{Kind: "grunt", Weight: 1},
			{Kind: "weaver", Weight: 1},
			{Kind: "hunter", Weight: 1},
		}
	}
	wave := func(target int, speed, interval float64) WaveConfig {
		return WaveConfig{Target: target, EnemySpeed: speed, SpawnInterval: interval, Distribution: mix()}
	}
	enemyBullet := func() *BulletConfig {
		return &BulletConfig{Speed: 400, Damage: 1, Size: 3}
	}
	enemy := func(kind, movement, glyph, color string) EnemyConfig {
		return EnemyConfig{
			Kind:         kind,
			MaxHP:        1,
			Movement:     movement,
			Shape:        "rectangle",
			Width:        30,
			Height:       30,
			FireInterval: 1.0,
			Bullet:       enemyBullet(),
			Glyph:        glyph,
			Color:        color,
		}
	}

	return ShooterConfig{
		Field: FieldConfig{
			Width:          480,
			Height:         720,
			BoundX:         225,
			BoundY:         340,
			SpawnY:         340,
			SpawnHalfWidth: 210,
			DespawnY:       -380,
			BulletBound:    360,
		},
		Player: PlayerConfig{
			MaxHP:               3,
			Speed:               500,
			StartX:              0,
			StartY:              -300,
			Width:               30,
			Height:              40,
			ShootInterval:       0.2,
			MinShootInterval:    0.025,
			SpawnInvincibility:  1.0,
			DamageInvincibility: 2.0,
			BlinkPeriod:         0.1,
			DeadDelay:           2.0,
			Bullet:              BulletConfig{Speed: 600, Damage: 1, Size: 3, Offset: 30},
		},
		Items: ItemsConfig{
			DropChance:      0.3,
			Size:            20,
			RapidFireFactor: 0.5,
		},
		Scoring:       ScoringConfig{KillAward: 100},
		Audio:         AudioConfig{Enabled: true, Volume: 0.2},
		Explosion:     ExplosionConfig{Frames: 4, FPS: 10},
		FallbackEnemy: "grunt",
		Enemies: []EnemyConfig{
			enemy("grunt", "straight", "V", "bright_red"),
			enemy("weaver", "zigzag", "W", "magenta"),
			enemy("hunter", "homing", "X", "orange"),
		},
		Stages: []StageConfig{
			{
				Name:       "Stage 1",
				Background: "ground",
				Waves:      []WaveConfig{wave(10, 200, 2.0), wave(20, 300, 0.3), wave(10, 500, 0.1)},
			},
			{
				Name:       "Stage 2",
				Background: "ocean",
				Waves:      []WaveConfig{wave(10, 100, 0.1), wave(20, 200, 0.1), wave(10, 500, 0.1)},
			},
			{
				Name:       "Stage 3",
				Background: "universe",
				Waves:      []WaveConfig{wave(10, 500, 2.0), wave(20, 500, 1.0), wave(10, 500, 0.1)},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				IntervalFactor:   0.6,
				FireRateIncrease: 0.5,
			},
		},
	}
}
