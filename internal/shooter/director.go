package shooter

import (
	"github.com/vovakirdan/vshooter/internal/core"
)

// selectKind picks a kind from an ordered distribution using a roll u in
// [0, sum of weights). Entries are accumulated in order and the first with
// u < cumulative wins, so a roll equal to a boundary falls to the next entry.
// It reports false when nothing can be chosen.
func selectKind(dist []WeightedKind, u float64) (EnemyKind, bool) {
	var cumulative float64
	for _, wk := range dist {
		if wk.Weight <= 0 {
			continue
		}
		cumulative += wk.Weight
		if u < cumulative {
			return wk.Kind, true
		}
	}
	return "", false
}

func totalWeight(dist []WeightedKind) float64 {
	var sum float64
	for _, wk := range dist {
		if wk.Weight > 0 {
			sum += wk.Weight
		}
	}
	return sum
}

// chooseEnemy draws an enemy definition for a wave. Empty or zero-weight
// distributions and kinds missing from the catalog resolve to the fallback.
func (s *Session) chooseEnemy(w *Wave) *EnemyDef {
	sum := totalWeight(w.Distribution)
	if sum <= 0 {
		return s.catalog.Fallback()
	}
	kind, ok := selectKind(w.Distribution, s.rng.Float64()*sum)
	if !ok {
		return s.catalog.Fallback()
	}
	def, ok := s.catalog.Lookup(kind)
	if !ok {
		s.log.Warn("unknown enemy kind, using fallback", "kind", kind, "fallback", s.catalog.Fallback().Kind)
		return s.catalog.Fallback()
	}
	return def
}

// spawnInterval returns the difficulty-adjusted spawn interval for a wave.
func (s *Session) spawnInterval(w *Wave) float64 {
	return s.difficulty.SpawnInterval(w.SpawnInterval, s.score, s.playTicks)
}

// updateSpawner ticks the spawn timer and spawns one enemy per completion
// while a live player exists.
func (s *Session) updateSpawner(dt float64) {
	s.spawnTimer.Tick(dt)
	if !s.spawnTimer.Finished() {
		return
	}
	if _, _, ok := s.world.Player(); !ok {
		return
	}

	wave := s.stages.Active().ActiveWave()
	// Difficulty may have shortened the interval since the last spawn.
	s.spawnTimer.SetDuration(s.spawnInterval(wave))

	for range s.spawnTimer.TimesFinished() {
		s.spawnEnemy(wave)
	}
}

func (s *Session) spawnEnemy(w *Wave) Entity {
	def := s.chooseEnemy(w)
	half := s.cfg.Field.SpawnHalfWidth
	x := -half + s.rng.Float64()*2*half
	fire := s.difficulty.FireInterval(def.FireInterval, s.score, s.playTicks)
	return s.world.SpawnEnemy(newEnemy(def, core.V(x, s.cfg.Field.SpawnY), fire))
}
