package shooter

// resolveCollisions tests every unordered pair of live collidables once and
// dispatches overlapping pairs by tag. Entities removed earlier in the pass
// are skipped, so each pair resolves at most once per tick.
func (s *Session) resolveCollisions() {
	bodies := s.world.collidables()
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if !s.world.Alive(a.e) || !s.world.Alive(b.e) {
				continue
			}
			if !Overlaps(a.body.Collider.Shape, a.body.Pos, b.body.Collider.Shape, b.body.Pos) {
				continue
			}
			s.dispatch(a, b)
		}
	}
}

// dispatch orders the pair by tag so each handler sees a fixed argument order.
func (s *Session) dispatch(a, b collidable) {
	if a.body.Collider.Tag > b.body.Collider.Tag {
		a, b = b, a
	}
	switch [2]Tag{a.body.Collider.Tag, b.body.Collider.Tag} {
	case [2]Tag{TagPlayer, TagEnemy}:
		s.onPlayerHit(a.e)
	case [2]Tag{TagPlayer, TagEnemyBullet}:
		if s.onPlayerHit(a.e) {
			s.world.Despawn(b.e)
		}
	case [2]Tag{TagPlayer, TagItem}:
		s.onPickup(a.e, b.e)
	case [2]Tag{TagEnemy, TagPlayerBullet}:
		s.onEnemyHit(a.e, b.e)
	}
}

func (s *Session) onPlayerHit(pe Entity) bool {
	ship, ok := s.world.Ship(pe)
	if !ok {
		return false
	}
	return s.damagePlayer(pe, ship)
}

func (s *Session) onPickup(pe, ie Entity) {
	ship, ok := s.world.Ship(pe)
	if !ok {
		return
	}
	item, ok := s.world.Item(ie)
	if !ok {
		return
	}
	ship.State = Apply(ship.State, item.Kind, s.itemRules())
	s.world.Despawn(ie)
	s.audio.PlayCue(CuePickup, s.cfg.Audio.Volume)
	s.log.Debug("item picked up", "item", item.Kind, "hp", ship.State.HP, "interval", ship.State.ShootInterval)
}

func (s *Session) onEnemyHit(ee, be Entity) {
	enemy, ok := s.world.Enemy(ee)
	if !ok {
		return
	}
	bullet, ok := s.world.Bullet(be)
	if !ok {
		return
	}

	piercing := false
	if _, ship, ok := s.world.Player(); ok {
		piercing = ship.State.Piercing
	}

	if bullet.hit[ee] {
		return
	}
	if piercing {
		if bullet.hit == nil {
			bullet.hit = make(map[Entity]bool)
		}
		bullet.hit[ee] = true
	} else {
		s.world.Despawn(be)
	}

	enemy.HP -= bullet.Damage
	if enemy.HP > 0 {
		return
	}
	s.killEnemy(ee, enemy)
}

// killEnemy removes a destroyed enemy and applies its rewards.
func (s *Session) killEnemy(e Entity, enemy *Enemy) {
	s.world.Despawn(e)
	s.spawnExplosion(enemy.Pos, ExplosionEnemy)
	s.audio.PlayCue(CueExplosion, s.cfg.Audio.Volume)
	s.score += s.cfg.Scoring.KillAward
	s.stages.Active().ActiveWave().Defeated++
	s.maybeDropItem(enemy.Pos)
}
