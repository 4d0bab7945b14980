package shooter

import "github.com/vovakirdan/vshooter/internal/config"

// WeightedKind is one entry of a wave's enemy distribution.
type WeightedKind struct {
	Kind   EnemyKind
	Weight float64
}

// Wave is one wave of a stage.
type Wave struct {
	Index         int
	Target        int // kills needed to finish the wave
	Defeated      int
	EnemySpeed    float64
	SpawnInterval float64
	Distribution  []WeightedKind
}

// Done reports whether the wave reached its kill target.
func (w *Wave) Done() bool {
	return w.Defeated >= w.Target
}

// Stage is a selectable sequence of waves.
type Stage struct {
	Name       string
	Background string
	Waves      []Wave
	Current    int
}

// ActiveWave returns the wave currently in play.
func (s *Stage) ActiveWave() *Wave {
	return &s.Waves[s.Current]
}

// IsLastWave reports whether the active wave is the final one.
func (s *Stage) IsLastWave() bool {
	return s.Current >= len(s.Waves)-1
}

// ResetCounters rewinds the stage to its first wave with zero kills.
func (s *Stage) ResetCounters() {
	s.Current = 0
	for i := range s.Waves {
		s.Waves[i].Defeated = 0
	}
}

// StageDatabase holds every stage and the selected one.
type StageDatabase struct {
	Stages   []Stage
	Selected int
}

// NewStageDatabase builds the stage table from configuration.
func NewStageDatabase(cfg []config.StageConfig) *StageDatabase {
	db := &StageDatabase{Stages: make([]Stage, 0, len(cfg))}
	for _, sc := range cfg {
		st := Stage{Name: sc.Name, Background: sc.Background}
		for i, wc := range sc.Waves {
			w := Wave{
				Index:         i,
				Target:        wc.Target,
				EnemySpeed:    wc.EnemySpeed,
				SpawnInterval: wc.SpawnInterval,
			}
			for _, d := range wc.Distribution {
				w.Distribution = append(w.Distribution, WeightedKind{Kind: EnemyKind(d.Kind), Weight: d.Weight})
			}
			st.Waves = append(st.Waves, w)
		}
		if len(st.Waves) > 0 {
			db.Stages = append(db.Stages, st)
		}
	}
	return db
}

// Active returns the selected stage.
func (db *StageDatabase) Active() *Stage {
	return &db.Stages[db.Selected]
}

// MoveCursor moves the selection by delta, wrapping at both ends.
func (db *StageDatabase) MoveCursor(delta int) {
	n := len(db.Stages)
	if n == 0 {
		return
	}
	db.Selected = ((db.Selected+delta)%n + n) % n
}

// progressWave advances to the next wave once the active wave reaches its
// target. On the final wave it pauses spawning and marks the stage cleared.
func (s *Session) progressWave() {
	stage := s.stages.Active()
	wave := stage.ActiveWave()
	if !wave.Done() || s.stageCleared {
		return
	}

	if stage.IsLastWave() {
		s.spawnTimer.Pause()
		s.stageCleared = true
		s.log.Info("stage cleared", "stage", stage.Name, "score", s.score)
		return
	}

	stage.Current++
	next := stage.ActiveWave()
	s.spawnTimer.SetDuration(s.spawnInterval(next))
	s.spawnTimer.Reset()
	s.log.Debug("wave advanced", "stage", stage.Name, "wave", stage.Current+1)
}
