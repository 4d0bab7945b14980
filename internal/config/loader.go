package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const shooterFile = "shooter.yaml"

// LoadShooter loads the shooter configuration.
// Search order: customPath -> ~/.arcade/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
//
// A file that exists but fails to parse or validate is skipped, except for
// customPath which is reported as an error.
func LoadShooter(customPath string) (ShooterConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseShooter(data)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(shooterFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseShooter(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", shooterFile)); err == nil {
		if cfg, err := ParseShooter(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := ParseShooter(defaultShooterYAML); err == nil {
		return cfg, nil
	}
	return DefaultShooterConfig(), nil
}

// ParseShooter decodes YAML on top of the built-in defaults and validates the
// result, so a partial file only overrides the keys it names.
func ParseShooter(data []byte) (ShooterConfig, error) {
	cfg := DefaultShooterConfig()
	// Lists are replaced wholesale rather than merged element-wise.
	cfg.Enemies = nil
	cfg.Stages = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ShooterConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	defaults := DefaultShooterConfig()
	if len(cfg.Enemies) == 0 {
		cfg.Enemies = defaults.Enemies
	}
	if len(cfg.Stages) == 0 {
		cfg.Stages = defaults.Stages
	}
	if err := cfg.Validate(); err != nil {
		return ShooterConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyShooterPreset modifies the config based on a difficulty preset.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP = 5
	case DifficultyHard:
		cfg.Player.MaxHP = 2
		cfg.Player.DamageInvincibility = 1.0
	}
}

// Validate reports every problem in the configuration at once.
func (c ShooterConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Player.MaxHP <= 0 {
		add("player.max_hp must be positive, got %d", c.Player.MaxHP)
	}
	if c.Player.ShootInterval <= 0 {
		add("player.shoot_interval must be positive, got %g", c.Player.ShootInterval)
	}
	if c.Player.MinShootInterval <= 0 {
		add("player.min_shoot_interval must be positive, got %g", c.Player.MinShootInterval)
	}
	if c.Player.Speed < 0 {
		add("player.speed must not be negative, got %g", c.Player.Speed)
	}
	if c.Field.BoundX <= 0 || c.Field.BoundY <= 0 {
		add("field bounds must be positive")
	}
	if c.Items.DropChance < 0 || c.Items.DropChance > 1 {
		add("items.drop_chance must be within [0, 1], got %g", c.Items.DropChance)
	}
	if c.Explosion.Frames <= 0 || c.Explosion.FPS <= 0 {
		add("explosion frames and fps must be positive")
	}

	kinds := make(map[string]bool, len(c.Enemies))
	for i, e := range c.Enemies {
		switch {
		case e.Kind == "":
			add("enemies[%d]: kind is required", i)
		case kinds[e.Kind]:
			add("enemies[%d]: duplicate kind %q", i, e.Kind)
		}
		kinds[e.Kind] = true
		switch e.Movement {
		case "straight", "zigzag", "homing":
		default:
			add("enemies[%d]: unknown movement %q", i, e.Movement)
		}
		switch e.Shape {
		case "", "rectangle", "circle", "capsule":
		default:
			add("enemies[%d]: unknown shape %q", i, e.Shape)
		}
		if e.MaxHP <= 0 {
			add("enemies[%d]: max_hp must be positive", i)
		}
	}
	if !kinds[c.FallbackEnemy] {
		add("fallback_enemy %q is not in the enemy catalog", c.FallbackEnemy)
	}

	if len(c.Stages) == 0 {
		add("at least one stage is required")
	}
	for i, s := range c.Stages {
		if len(s.Waves) == 0 {
			add("stages[%d] (%s): at least one wave is required", i, s.Name)
		}
		for j, w := range s.Waves {
			if w.Target <= 0 {
				add("stages[%d].waves[%d]: target must be positive", i, j)
			}
			if w.SpawnInterval < 0 {
				add("stages[%d].waves[%d]: spawn_interval must not be negative", i, j)
			}
			for _, d := range w.Distribution {
				if d.Weight < 0 {
					add("stages[%d].waves[%d]: negative weight for %q", i, j, d.Kind)
				}
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid shooter config: %w", err)
	}
	return nil
}
