// Package config provides YAML-based configuration loading for the shooter:
// the playfield, player tuning, the enemy catalog, stage/wave tables and
// difficulty progression.
package config

// ShooterConfig contains all configuration for a shooter session.
type ShooterConfig struct {
	Field         FieldConfig      `yaml:"field"`
	Player        PlayerConfig     `yaml:"player"`
	Items         ItemsConfig      `yaml:"items"`
	Scoring       ScoringConfig    `yaml:"scoring"`
	Audio         AudioConfig      `yaml:"audio"`
	Explosion     ExplosionConfig  `yaml:"explosion"`
	FallbackEnemy string           `yaml:"fallback_enemy"`
	Enemies       []EnemyConfig    `yaml:"enemies"`
	Stages        []StageConfig    `yaml:"stages"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig describes the playfield in field units. The origin is the
// center of the field and Y points up.
type FieldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	BoundX         float64 `yaml:"bound_x"`          // Player clamp on X
	BoundY         float64 `yaml:"bound_y"`          // Player clamp on Y
	SpawnY         float64 `yaml:"spawn_y"`          // Enemy spawn line
	SpawnHalfWidth float64 `yaml:"spawn_half_width"` // Enemy spawn X range is [-w, w)
	DespawnY       float64 `yaml:"despawn_y"`        // Enemies at or below this are removed
	BulletBound    float64 `yaml:"bullet_bound"`     // Bullets with |y| >= bound are removed
}

// PlayerConfig defines player tuning.
type PlayerConfig struct {
	MaxHP               int          `yaml:"max_hp"`
	Speed               float64      `yaml:"speed"`
	StartX              float64      `yaml:"start_x"`
	StartY              float64      `yaml:"start_y"`
	Width               float64      `yaml:"width"`
	Height              float64      `yaml:"height"`
	ShootInterval       float64      `yaml:"shoot_interval"`
	MinShootInterval    float64      `yaml:"min_shoot_interval"`
	SpawnInvincibility  float64      `yaml:"spawn_invincibility"`
	DamageInvincibility float64      `yaml:"damage_invincibility"`
	BlinkPeriod         float64      `yaml:"blink_period"`
	DeadDelay           float64      `yaml:"dead_delay"` // Seconds between death and game over
	Bullet              BulletConfig `yaml:"bullet"`
}

// BulletConfig is a projectile template.
type BulletConfig struct {
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
	Size   float64 `yaml:"size"`
	Offset float64 `yaml:"offset"` // Spawn offset along the firing direction
}

// ItemsConfig controls item drops.
type ItemsConfig struct {
	DropChance      float64 `yaml:"drop_chance"`
	Size            float64 `yaml:"size"`
	RapidFireFactor float64 `yaml:"rapid_fire_factor"`
}

// ScoringConfig controls score awards.
type ScoringConfig struct {
	KillAward int `yaml:"kill_award"`
}

// AudioConfig controls cue playback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// ExplosionConfig defines the explosion animation.
type ExplosionConfig struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
}

// EnemyConfig is one entry of the enemy catalog.
type EnemyConfig struct {
	Kind         string        `yaml:"kind"`
	MaxHP        int           `yaml:"max_hp"`
	Movement     string        `yaml:"movement"` // "straight", "zigzag" or "homing"
	Shape        string        `yaml:"shape"`    // "rectangle", "circle" or "capsule"
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	FireInterval float64       `yaml:"fire_interval"`
	Bullet       *BulletConfig `yaml:"bullet,omitempty"` // nil means the enemy never fires
	Glyph        string        `yaml:"glyph"`
	Color        string        `yaml:"color"`
}

// StageConfig is one selectable stage.
type StageConfig struct {
	Name       string       `yaml:"name"`
	Background string       `yaml:"background"`
	Waves      []WaveConfig `yaml:"waves"`
}

// WaveConfig is one wave of a stage.
type WaveConfig struct {
	Target        int                 `yaml:"target"`
	EnemySpeed    float64             `yaml:"enemy_speed"`
	SpawnInterval float64             `yaml:"spawn_interval"`
	Distribution  []DistributionEntry `yaml:"distribution"`
}

// DistributionEntry weights one enemy kind inside a wave.
type DistributionEntry struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

// DifficultyConfig defines difficulty progression settings.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 to 1.0
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to enemy speed factor at max difficulty
	IntervalFactor   float64 `yaml:"interval_factor"`   // Spawn interval multiplier at max difficulty
	FireRateIncrease float64 `yaml:"fire_rate_increase"` // Added to enemy fire rate at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown values yield false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
