package shooter

import "github.com/vovakirdan/vshooter/internal/core"

// Animation is a frame counter driven by simulation time.
type Animation struct {
	frames  int
	fps     float64
	loop    bool
	elapsed float64
}

// NewAnimation creates an animation of n frames at fps frames per second.
func NewAnimation(frames int, fps float64, loop bool) Animation {
	return Animation{frames: max(frames, 1), fps: fps, loop: loop}
}

// Tick advances the animation by dt seconds.
func (a *Animation) Tick(dt float64) {
	a.elapsed += dt
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	if a.fps <= 0 {
		return 0
	}
	f := int(a.elapsed * a.fps)
	if a.loop {
		return f % a.frames
	}
	return min(f, a.frames-1)
}

// Done reports whether a play-once animation has shown its last frame for a
// full frame period.
func (a *Animation) Done() bool {
	if a.loop {
		return false
	}
	if a.fps <= 0 {
		return true
	}
	return int(a.elapsed*a.fps) >= a.frames
}

// ExplosionSource tells the renderer whose explosion it is.
type ExplosionSource uint8

const (
	ExplosionEnemy ExplosionSource = iota
	ExplosionPlayer
)

// Explosion is a transient visual effect.
type Explosion struct {
	Pos    core.Vec2
	Source ExplosionSource
	anim   Animation
}

// Frame returns the current explosion frame.
func (x *Explosion) Frame() int {
	return x.anim.Frame()
}

func (s *Session) spawnExplosion(pos core.Vec2, src ExplosionSource) Entity {
	return s.world.SpawnExplosion(&Explosion{
		Pos:    pos,
		Source: src,
		anim:   NewAnimation(s.cfg.Explosion.Frames, s.cfg.Explosion.FPS, false),
	})
}

// tickExplosions advances explosion animations and removes finished ones.
func (s *Session) tickExplosions(dt float64) {
	s.world.EachExplosion(func(e Entity, x *Explosion) {
		x.anim.Tick(dt)
		if x.anim.Done() {
			s.world.Despawn(e)
		}
	})
}
