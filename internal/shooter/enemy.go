package shooter

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/vshooter/internal/config"
	"github.com/vovakirdan/vshooter/internal/core"
)

// EnemyKind keys the enemy catalog.
type EnemyKind string

// Movement is an enemy movement pattern.
type Movement uint8

const (
	MoveStraight Movement = iota
	MoveZigzag
	MoveHoming
)

func parseMovement(s string) Movement {
	switch s {
	case "zigzag":
		return MoveZigzag
	case "homing":
		return MoveHoming
	default:
		return MoveStraight
	}
}

func (m Movement) String() string {
	switch m {
	case MoveZigzag:
		return "zigzag"
	case MoveHoming:
		return "homing"
	default:
		return "straight"
	}
}

// zigzagFrequency is the angular rate of the zigzag sway in radians per second.
const zigzagFrequency = 5.0

// BulletTemplate describes the projectiles an enemy fires.
type BulletTemplate struct {
	Speed  float64
	Damage int
	Size   float64
}

// EnemyDef is a catalog entry.
type EnemyDef struct {
	Kind         EnemyKind
	MaxHP        int
	Movement     Movement
	Shape        Shape
	FireInterval float64
	Bullet       *BulletTemplate // nil when the enemy never fires
	Glyph        rune
	Color        core.Color
}

// builtinEnemy is used when even the fallback kind is missing from the catalog.
var builtinEnemy = EnemyDef{
	Kind:         "grunt",
	MaxHP:        1,
	Movement:     MoveStraight,
	Shape:        Rectangle(30, 30),
	FireInterval: 1.0,
	Bullet:       &BulletTemplate{Speed: 400, Damage: 1, Size: 3},
	Glyph:        'V',
	Color:        core.ColorBrightRed,
}

// Catalog holds enemy definitions for a session.
type Catalog struct {
	defs     map[EnemyKind]*EnemyDef
	fallback EnemyKind
}

// NewCatalog builds the catalog from configuration.
func NewCatalog(cfg config.ShooterConfig) *Catalog {
	c := &Catalog{
		defs:     make(map[EnemyKind]*EnemyDef, len(cfg.Enemies)),
		fallback: EnemyKind(cfg.FallbackEnemy),
	}
	for _, ec := range cfg.Enemies {
		def := &EnemyDef{
			Kind:         EnemyKind(ec.Kind),
			MaxHP:        max(ec.MaxHP, 1),
			Movement:     parseMovement(ec.Movement),
			Shape:        shapeFromConfig(ec.Shape, ec.Width, ec.Height),
			FireInterval: ec.FireInterval,
			Glyph:        'V',
			Color:        core.ColorRed,
		}
		if ec.Bullet != nil {
			def.Bullet = &BulletTemplate{Speed: ec.Bullet.Speed, Damage: max(ec.Bullet.Damage, 1), Size: ec.Bullet.Size}
		}
		if r, _ := utf8.DecodeRuneInString(ec.Glyph); r != utf8.RuneError {
			def.Glyph = r
		}
		if col, ok := core.ParseColor(ec.Color); ok {
			def.Color = col
		}
		c.defs[def.Kind] = def
	}
	return c
}

// Lookup returns the definition for kind.
func (c *Catalog) Lookup(kind EnemyKind) (*EnemyDef, bool) {
	def, ok := c.defs[kind]
	return def, ok
}

// Fallback returns the fallback definition. It never returns nil.
func (c *Catalog) Fallback() *EnemyDef {
	if def, ok := c.defs[c.fallback]; ok {
		return def
	}
	return &builtinEnemy
}

// Enemy is the enemy component.
type Enemy struct {
	Body
	Kind     EnemyKind
	HP       int
	Movement Movement
	Glyph    rune
	Color    core.Color

	bullet *BulletTemplate
	fire   core.Timer
	anim   Animation
}

// Frame returns the current animation frame.
func (e *Enemy) Frame() int {
	return e.anim.Frame()
}

// newEnemy instantiates a definition at pos.
func newEnemy(def *EnemyDef, pos core.Vec2, fireInterval float64) *Enemy {
	bullet := def.Bullet
	if fireInterval <= 0 {
		bullet = nil
	}
	return &Enemy{
		Body:     Body{Pos: pos, Collider: Collider{Shape: def.Shape, Tag: TagEnemy}},
		Kind:     def.Kind,
		HP:       def.MaxHP,
		Movement: def.Movement,
		Glyph:    def.Glyph,
		Color:    def.Color,
		bullet:   bullet,
		fire:     core.NewTimer(fireInterval, core.TimerRepeating),
		anim:     NewAnimation(2, 5, true),
	}
}

// step integrates one movement step. elapsed is total session time, which
// drives the zigzag phase for every enemy alike.
func (e *Enemy) step(dt, speed, elapsed float64, player core.Vec2, hasPlayer bool) {
	switch e.Movement {
	case MoveStraight:
		e.Pos.Y -= speed * dt
	case MoveZigzag:
		e.Pos.Y -= speed * dt
		e.Pos.X += math.Sin(elapsed*zigzagFrequency) * speed * dt
	case MoveHoming:
		if !hasPlayer {
			return
		}
		dir := player.Sub(e.Pos).Normalize()
		e.Pos = e.Pos.Add(dir.Scale(speed * dt))
	}
}

// moveEnemies advances every enemy, fires enemy bullets and removes enemies
// that left the field through the bottom.
func (s *Session) moveEnemies(dt float64) {
	wave := s.stages.Active().ActiveWave()
	speed := s.difficulty.EnemySpeed(wave.EnemySpeed, s.score, s.playTicks)
	playerPos, hasPlayer := s.world.PlayerPos()

	s.world.EachEnemy(func(e Entity, en *Enemy) {
		en.step(dt, speed, s.clock, playerPos, hasPlayer)
		en.anim.Tick(dt)

		if en.Pos.Y <= s.cfg.Field.DespawnY {
			s.world.Despawn(e)
			return
		}

		if en.bullet == nil {
			return
		}
		en.fire.Tick(dt)
		if en.fire.Finished() && hasPlayer {
			s.spawnEnemyBullet(en.Pos, en.bullet)
		}
	})
}
