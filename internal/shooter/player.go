package shooter

import (
	"math"

	"github.com/vovakirdan/vshooter/internal/core"
)

// PlayerState is the gameplay state item effects operate on.
type PlayerState struct {
	MaxHP         int
	HP            int
	ShootInterval float64
	Piercing      bool
}

// Ship is the player component.
type Ship struct {
	Body
	State PlayerState

	invincible core.Timer
	cooldown   core.Timer
	opacity    float64
}

// Invincible reports whether the ship currently ignores damage.
func (p *Ship) Invincible() bool {
	return !p.invincible.Finished()
}

// Opacity returns the blink opacity, 1 or 0.
func (p *Ship) Opacity() float64 {
	return p.opacity
}

func (s *Session) spawnPlayer() Entity {
	pc := s.cfg.Player
	cooldown := core.NewTimer(pc.ShootInterval, core.TimerOnce)
	cooldown.Tick(pc.ShootInterval) // first shot is available immediately

	ship := &Ship{
		Body: Body{
			Pos:      core.V(pc.StartX, pc.StartY),
			Collider: Collider{Shape: Rectangle(pc.Width, pc.Height), Tag: TagPlayer},
		},
		State: PlayerState{
			MaxHP:         pc.MaxHP,
			HP:            pc.MaxHP,
			ShootInterval: pc.ShootInterval,
		},
		invincible: core.NewTimer(pc.SpawnInvincibility, core.TimerOnce),
		cooldown:   cooldown,
		opacity:    1,
	}
	return s.world.SpawnPlayer(ship)
}

// blinkOpacity returns the opacity for an invincible ship: visible during
// even blink periods and hidden during odd ones.
func blinkOpacity(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	if int(math.Floor(elapsed/period))%2 == 0 {
		return 1
	}
	return 0
}

// updatePlayer runs invincibility, blink, movement and firing for the ship.
func (s *Session) updatePlayer(dt float64, in core.InputFrame) {
	e, ship, ok := s.world.Player()
	if !ok {
		return
	}
	pc := s.cfg.Player

	ship.invincible.Tick(dt)
	alpha := 1.0
	if ship.Invincible() {
		alpha = blinkOpacity(ship.invincible.Elapsed(), pc.BlinkPeriod)
	}
	if alpha != ship.opacity {
		ship.opacity = alpha
		s.presenter.SetOpacity(e, alpha)
	}

	dx, dy := in.Axis()
	ship.Pos.X = core.ClampF(ship.Pos.X+dx*pc.Speed*dt, -s.cfg.Field.BoundX, s.cfg.Field.BoundX)
	ship.Pos.Y = core.ClampF(ship.Pos.Y+dy*pc.Speed*dt, -s.cfg.Field.BoundY, s.cfg.Field.BoundY)

	if ship.cooldown.Duration() != ship.State.ShootInterval {
		ship.cooldown.SetDuration(ship.State.ShootInterval)
	}
	ship.cooldown.Tick(dt)
	if ship.cooldown.Finished() && in.IsHeld(core.ActionFire) {
		s.spawnPlayerBullet(ship.Pos)
		s.audio.PlayCue(CueShoot, s.cfg.Audio.Volume)
		ship.cooldown.Reset()
	}
}

// damagePlayer applies one point of damage unless the ship is invincible.
// It reports whether damage was dealt.
func (s *Session) damagePlayer(e Entity, ship *Ship) bool {
	if ship.Invincible() {
		return false
	}
	ship.State.HP--
	ship.invincible = core.NewTimer(s.cfg.Player.DamageInvincibility, core.TimerOnce)

	if ship.State.HP <= 0 {
		ship.State.HP = 0
		s.spawnExplosion(ship.Pos, ExplosionPlayer)
		s.audio.PlayCue(CueExplosion, s.cfg.Audio.Volume)
		s.world.Despawn(e)
		s.playerDead = true
		s.deadTimer = core.NewTimer(s.cfg.Player.DeadDelay, core.TimerOnce)
		s.log.Debug("player destroyed", "score", s.score)
	} else {
		s.audio.PlayCue(CueDamage, s.cfg.Audio.Volume)
	}
	return true
}
