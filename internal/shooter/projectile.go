package shooter

import "github.com/vovakirdan/vshooter/internal/core"

// Owner is the side a bullet was fired by.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Bullet is the projectile component.
type Bullet struct {
	Body
	Owner  Owner
	Speed  float64
	Damage int

	// hit remembers enemies a piercing bullet already damaged so it deals
	// damage once per enemy.
	hit map[Entity]bool
}

func (s *Session) spawnPlayerBullet(pos core.Vec2) Entity {
	bc := s.cfg.Player.Bullet
	return s.world.SpawnBullet(&Bullet{
		Body: Body{
			Pos:      pos.Add(core.V(0, bc.Offset)),
			Collider: Collider{Shape: Rectangle(bc.Size, bc.Size), Tag: TagPlayerBullet},
		},
		Owner:  OwnerPlayer,
		Speed:  bc.Speed,
		Damage: max(bc.Damage, 1),
	})
}

func (s *Session) spawnEnemyBullet(pos core.Vec2, t *BulletTemplate) Entity {
	return s.world.SpawnBullet(&Bullet{
		Body: Body{
			Pos:      pos,
			Collider: Collider{Shape: Rectangle(t.Size, t.Size), Tag: TagEnemyBullet},
		},
		Owner:  OwnerEnemy,
		Speed:  t.Speed,
		Damage: t.Damage,
	})
}

// moveBullets moves player bullets up and enemy bullets down, removing any
// that leave the field.
func (s *Session) moveBullets(dt float64) {
	bound := s.cfg.Field.BulletBound
	s.world.EachBullet(func(e Entity, b *Bullet) {
		if b.Owner == OwnerPlayer {
			b.Pos.Y += b.Speed * dt
		} else {
			b.Pos.Y -= b.Speed * dt
		}
		if b.Pos.Y >= bound || b.Pos.Y <= -bound {
			s.world.Despawn(e)
		}
	})
}
