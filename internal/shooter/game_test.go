package shooter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vshooter/internal/config"
	"github.com/vovakirdan/vshooter/internal/core"
	"github.com/vovakirdan/vshooter/internal/registry"
)

type recordingAudio struct {
	cues  []Cue
	stops int
}

func (a *recordingAudio) PlayCue(c Cue, _ float64) { a.cues = append(a.cues, c) }
func (a *recordingAudio) StopAll()                 { a.stops++ }

func (a *recordingAudio) count(c Cue) int {
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordingPresenter struct {
	texts    map[TextSlot]string
	opacity  map[Entity]float64
	setCalls int
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{
		texts:   make(map[TextSlot]string),
		opacity: make(map[Entity]float64),
	}
}

func (p *recordingPresenter) SetOpacity(e Entity, alpha float64) { p.opacity[e] = alpha }
func (p *recordingPresenter) SetText(slot TextSlot, text string) {
	p.texts[slot] = text
	p.setCalls++
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

// newPlayingGame starts the first stage directly.
func newPlayingGame(t *testing.T, opts ...Option) (*Game, *recordingAudio, *recordingPresenter) {
	t.Helper()
	audio := &recordingAudio{}
	presenter := newRecordingPresenter()
	base := []Option{
		WithConfig(config.DefaultShooterConfig()),
		WithAudio(audio),
		WithPresenter(presenter),
		WithStartMode(ModePlaying),
	}
	g := New(append(base, opts...)...)
	g.Reset(testConfig())
	if g.Session().Mode() != ModePlaying {
		t.Fatalf("Expected playing mode, got %v", g.Session().Mode())
	}
	return g, audio, presenter
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func pressed(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// vulnerable ends the spawn invincibility of the live player.
func vulnerable(t *testing.T, s *Session) (Entity, *Ship) {
	t.Helper()
	e, ship, ok := s.world.Player()
	if !ok {
		t.Fatal("Expected a live player")
	}
	ship.invincible = core.NewTimer(0, core.TimerOnce)
	return e, ship
}

func placeEnemy(s *Session, kind EnemyKind, pos core.Vec2) (Entity, *Enemy) {
	def, ok := s.catalog.Lookup(kind)
	if !ok {
		def = s.catalog.Fallback()
	}
	en := newEnemy(def, pos, def.FireInterval)
	e := s.world.SpawnEnemy(en)
	s.world.Flush()
	return e, en
}

func placePlayerBullet(s *Session, pos core.Vec2) (Entity, *Bullet) {
	e := s.spawnPlayerBullet(pos.Sub(core.V(0, s.cfg.Player.Bullet.Offset)))
	s.world.Flush()
	b, _ := s.world.Bullet(e)
	return e, b
}

func TestStartPlayingSpawnsPlayer(t *testing.T) {
	g, _, presenter := newPlayingGame(t)
	s := g.Session()

	_, ship, ok := s.world.Player()
	if !ok {
		t.Fatal("Expected a player after entering playing mode")
	}
	if ship.Pos != core.V(0, -300) {
		t.Errorf("Expected player at (0,-300), got %v", ship.Pos)
	}
	if ship.State.HP != 3 || ship.State.MaxHP != 3 {
		t.Errorf("Expected 3/3 hp, got %d/%d", ship.State.HP, ship.State.MaxHP)
	}
	if !ship.Invincible() {
		t.Error("Expected spawn invincibility")
	}
	if s.Background() != "ground" {
		t.Errorf("Expected ground background, got %q", s.Background())
	}
	if presenter.texts[TextStage] != "Stage 1" {
		t.Errorf("Expected stage text, got %q", presenter.texts[TextStage])
	}
}

func TestHUDText(t *testing.T) {
	g, _, presenter := newPlayingGame(t)
	g.Step(idle())

	want := map[TextSlot]string{
		TextScore:  "Score: 0",
		TextHearts: "♥♥♥",
		TextWave:   "Wave 1/3",
	}
	for slot, text := range want {
		if presenter.texts[slot] != text {
			t.Errorf("slot %d: expected %q, got %q", slot, text, presenter.texts[slot])
		}
	}

	calls := presenter.setCalls
	g.Step(idle())
	if presenter.setCalls != calls {
		t.Errorf("Expected no text updates for an unchanged HUD, got %d", presenter.setCalls-calls)
	}
}

func TestInvinciblePlayerTakesNoDamage(t *testing.T) {
	g, audio, _ := newPlayingGame(t)
	s := g.Session()
	_, ship, _ := s.world.Player()

	placeEnemy(s, "grunt", ship.Pos)
	g.Step(idle())

	if ship.State.HP != ship.State.MaxHP {
		t.Errorf("Expected hp unchanged while invincible, got %d", ship.State.HP)
	}
	if audio.count(CueDamage) != 0 {
		t.Error("Expected no damage cue")
	}
}

func TestDamageGrantsInvincibility(t *testing.T) {
	g, audio, _ := newPlayingGame(t)
	s := g.Session()
	_, ship := vulnerable(t, s)

	placeEnemy(s, "grunt", ship.Pos)
	g.Step(idle())

	if ship.State.HP != 2 {
		t.Fatalf("Expected hp 2 after contact, got %d", ship.State.HP)
	}
	if !ship.Invincible() {
		t.Error("Expected invincibility after damage")
	}
	if audio.count(CueDamage) != 1 {
		t.Errorf("Expected one damage cue, got %d", audio.count(CueDamage))
	}

	// Still overlapping, but invincible now.
	g.Step(idle())
	if ship.State.HP != 2 {
		t.Errorf("Expected hp to stay 2, got %d", ship.State.HP)
	}
}

func TestEnemyBulletRemovedOnlyWhenItDamages(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	_, ship, _ := s.world.Player()

	grunt, _ := s.catalog.Lookup("grunt")
	be := s.spawnEnemyBullet(ship.Pos, grunt.Bullet)
	s.world.Flush()

	g.Step(idle())
	if !s.world.Alive(be) {
		t.Fatal("Expected bullet to survive hitting an invincible player")
	}

	b, _ := s.world.Bullet(be)
	vulnerable(t, s)
	b.Pos = ship.Pos
	g.Step(idle())
	if s.world.Alive(be) {
		t.Error("Expected bullet removed after dealing damage")
	}
	if ship.State.HP != 2 {
		t.Errorf("Expected hp 2, got %d", ship.State.HP)
	}
}

func TestPlayerDeathSpawnsSingleExplosion(t *testing.T) {
	g, audio, _ := newPlayingGame(t)
	s := g.Session()
	pe, ship := vulnerable(t, s)
	ship.State.HP = 1

	placeEnemy(s, "grunt", ship.Pos)
	placeEnemy(s, "grunt", ship.Pos)
	g.Step(idle())

	if s.world.Alive(pe) {
		t.Error("Expected player removed")
	}
	if ship.State.HP != 0 {
		t.Errorf("Expected hp 0, got %d", ship.State.HP)
	}
	if n := s.world.Count(KindExplosion); n != 1 {
		t.Errorf("Expected exactly one explosion, got %d", n)
	}
	if audio.count(CueExplosion) != 1 {
		t.Errorf("Expected one explosion cue, got %d", audio.count(CueExplosion))
	}
	if !s.playerDead {
		t.Error("Expected player dead flag")
	}
}

func TestGameOverAfterDeadDelay(t *testing.T) {
	g, audio, presenter := newPlayingGame(t)
	s := g.Session()
	_, ship := vulnerable(t, s)
	ship.State.HP = 1
	placeEnemy(s, "grunt", ship.Pos)

	g.Step(idle())
	for range 60 {
		g.Step(idle())
	}
	if s.Mode() != ModePlaying {
		t.Fatalf("Expected to stay in playing during the dead delay, got %v", s.Mode())
	}

	var res core.StepResult
	for i := 0; i < 120 && s.Mode() == ModePlaying; i++ {
		res = g.Step(idle())
	}
	if s.Mode() != ModeGameOver || !res.State.GameOver {
		t.Fatalf("Expected game over, got %v", s.Mode())
	}
	if total := len(s.world.Counts()); total != 0 {
		t.Errorf("Expected empty world after leaving playing, got %v", s.world.Counts())
	}
	if audio.stops == 0 {
		t.Error("Expected audio stopped on exit")
	}
	if presenter.texts[TextScore] != "" || presenter.texts[TextHearts] != "" {
		t.Error("Expected HUD cleared on exit")
	}
	if !strings.HasPrefix(presenter.texts[TextBanner], "GAME OVER") {
		t.Errorf("Expected game over banner, got %q", presenter.texts[TextBanner])
	}

	g.Step(pressed(core.ActionRestart))
	if s.Mode() != ModePlaying {
		t.Fatalf("Expected restart into playing, got %v", s.Mode())
	}
	if _, _, ok := s.world.Player(); !ok {
		t.Error("Expected a fresh player after restart")
	}
	if s.Score() != 0 {
		t.Errorf("Expected score reset, got %d", s.Score())
	}
}

func TestKillAwardsScore(t *testing.T) {
	g, audio, _ := newPlayingGame(t)
	s := g.Session()

	ee, _ := placeEnemy(s, "grunt", core.V(0, 0))
	be, _ := placePlayerBullet(s, core.V(0, -10))
	g.Step(idle())

	if s.world.Alive(ee) || s.world.Alive(be) {
		t.Error("Expected enemy and bullet removed")
	}
	if s.Score() != 100 {
		t.Errorf("Expected score 100, got %d", s.Score())
	}
	if s.stages.Active().ActiveWave().Defeated != 1 {
		t.Errorf("Expected one defeat, got %d", s.stages.Active().ActiveWave().Defeated)
	}
	if audio.count(CueExplosion) != 1 {
		t.Errorf("Expected one explosion cue, got %d", audio.count(CueExplosion))
	}
}

func TestBulletPiercing(t *testing.T) {
	tests := []struct {
		name       string
		piercing   bool
		wantHP     [2]int
		wantBullet bool
	}{
		{"normal", false, [2]int{1, 2}, false},
		{"piercing", true, [2]int{1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newPlayingGame(t)
			s := g.Session()
			_, ship, _ := s.world.Player()
			ship.State.Piercing = tt.piercing

			_, a := placeEnemy(s, "grunt", core.V(0, 0))
			_, b := placeEnemy(s, "grunt", core.V(0, 0))
			a.HP, b.HP = 2, 2
			be, _ := placePlayerBullet(s, core.V(0, -10))

			g.Step(idle())
			g.Step(idle())

			if a.HP != tt.wantHP[0] || b.HP != tt.wantHP[1] {
				t.Errorf("Expected hp %v, got [%d %d]", tt.wantHP, a.HP, b.HP)
			}
			if s.world.Alive(be) != tt.wantBullet {
				t.Errorf("Expected bullet alive=%v", tt.wantBullet)
			}
		})
	}
}

func TestPiercingBulletKillsAndPersists(t *testing.T) {
	tests := []struct {
		name       string
		piercing   bool
		wantBullet bool
	}{
		{"normal", false, false},
		{"piercing", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newPlayingGame(t)
			s := g.Session()
			_, ship, _ := s.world.Player()
			ship.State.Piercing = tt.piercing

			ee, en := placeEnemy(s, "grunt", core.V(0, 0))
			en.HP = 1
			be, _ := placePlayerBullet(s, core.V(0, -10))

			g.Step(idle())

			if s.world.Alive(ee) {
				t.Error("Expected one-hit enemy destroyed")
			}
			if s.world.Alive(be) != tt.wantBullet {
				t.Errorf("Expected bullet alive=%v", tt.wantBullet)
			}
			if s.Score() != 100 {
				t.Errorf("Expected score 100, got %d", s.Score())
			}
			if n := s.world.Count(KindExplosion); n != 1 {
				t.Errorf("Expected one explosion, got %d", n)
			}
		})
	}
}

func TestWaveAdvancesAfterTarget(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	stage := s.stages.Active()

	for range 9 {
		e, en := placeEnemy(s, "grunt", core.V(0, 0))
		s.killEnemy(e, en)
	}
	s.progressWave()
	if stage.Current != 0 {
		t.Fatalf("Expected first wave after 9 kills, got %d", stage.Current)
	}

	e, en := placeEnemy(s, "grunt", core.V(0, 0))
	s.killEnemy(e, en)
	s.progressWave()
	if stage.Current != 1 {
		t.Fatalf("Expected second wave after 10 kills, got %d", stage.Current)
	}
	if s.spawnTimer.Duration() != 0.3 {
		t.Errorf("Expected spawn interval 0.3, got %v", s.spawnTimer.Duration())
	}
	if s.Score() != 1000 {
		t.Errorf("Expected score 1000, got %d", s.Score())
	}
}

func TestLastWaveClearsStage(t *testing.T) {
	g, audio, presenter := newPlayingGame(t)
	s := g.Session()
	stage := s.stages.Active()
	stage.Current = len(stage.Waves) - 1
	stage.ActiveWave().Defeated = stage.ActiveWave().Target - 1

	placeEnemy(s, "grunt", core.V(0, 0))
	placePlayerBullet(s, core.V(0, -10))
	res := g.Step(idle())

	if s.Mode() != ModeClear || !res.State.Cleared {
		t.Fatalf("Expected clear mode, got %v", s.Mode())
	}
	if !s.spawnTimer.Paused() {
		t.Error("Expected spawn timer paused")
	}
	if audio.count(CueClear) != 1 {
		t.Errorf("Expected clear cue, got %d", audio.count(CueClear))
	}
	if !strings.HasPrefix(presenter.texts[TextBanner], "STAGE CLEAR") {
		t.Errorf("Expected clear banner, got %q", presenter.texts[TextBanner])
	}

	stops := audio.stops
	g.Step(pressed(core.ActionConfirm))
	if s.Mode() != ModeStageSelect {
		t.Fatalf("Expected stage select, got %v", s.Mode())
	}
	if audio.stops == stops {
		t.Error("Expected clear jingle stopped when leaving clear")
	}
}

func TestModeFlow(t *testing.T) {
	presenter := newRecordingPresenter()
	g := New(WithConfig(config.DefaultShooterConfig()), WithPresenter(presenter))
	g.Reset(testConfig())
	s := g.Session()

	if s.Mode() != ModeTitle {
		t.Fatalf("Expected title, got %v", s.Mode())
	}
	g.Step(idle())
	if s.Mode() != ModeTitle {
		t.Fatal("Expected title to wait for input")
	}

	g.Step(pressed(core.ActionConfirm))
	if s.Mode() != ModeStageSelect {
		t.Fatalf("Expected stage select, got %v", s.Mode())
	}
	g.Step(pressed(core.ActionDown))
	if s.stages.Selected != 1 {
		t.Errorf("Expected cursor on second stage, got %d", s.stages.Selected)
	}
	if !strings.Contains(presenter.texts[TextBanner], "> Stage 2") {
		t.Errorf("Expected cursor in banner, got %q", presenter.texts[TextBanner])
	}

	g.Step(pressed(core.ActionBack))
	if s.Mode() != ModeTitle {
		t.Fatalf("Expected back to title, got %v", s.Mode())
	}
	g.Step(pressed(core.ActionFire))
	g.Step(pressed(core.ActionFire))
	if s.Mode() != ModePlaying {
		t.Fatalf("Expected playing, got %v", s.Mode())
	}

	st := g.State()
	if st.Stage != "Stage 2" || st.Wave != 1 || st.Mode != "playing" {
		t.Errorf("Unexpected state %+v", st)
	}
	if s.Background() != "ocean" {
		t.Errorf("Expected ocean background, got %q", s.Background())
	}
}

func TestStageCursorWraps(t *testing.T) {
	db := NewStageDatabase(config.DefaultShooterConfig().Stages)

	tests := []struct {
		delta int
		want  int
	}{
		{-1, 2},
		{1, 0},
		{1, 1},
		{4, 2},
	}
	for _, tt := range tests {
		db.MoveCursor(tt.delta)
		if db.Selected != tt.want {
			t.Errorf("MoveCursor(%d): expected %d, got %d", tt.delta, tt.want, db.Selected)
		}
	}
}

func TestStageDatabaseSkipsEmptyStages(t *testing.T) {
	db := NewStageDatabase([]config.StageConfig{
		{Name: "empty", Background: "ground"},
		{Name: "real", Background: "ocean", Waves: []config.WaveConfig{{Target: 1, EnemySpeed: 100, SpawnInterval: 1}}},
	})
	if len(db.Stages) != 1 || db.Active().Name != "real" {
		t.Errorf("Expected only the stage with waves, got %+v", db.Stages)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	_, en := placeEnemy(s, "grunt", core.V(0, 0))

	res := g.Step(pressed(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Expected paused state")
	}
	pos := en.Pos
	for range 30 {
		g.Step(idle())
	}
	if en.Pos != pos {
		t.Errorf("Expected enemy frozen while paused, moved from %v to %v", pos, en.Pos)
	}

	g.Step(pressed(core.ActionPause))
	g.Step(idle())
	if en.Pos == pos {
		t.Error("Expected enemy to move after resuming")
	}
}

func TestPlayerFiresWhileHeld(t *testing.T) {
	g, audio, _ := newPlayingGame(t)
	s := g.Session()

	in := core.NewInputFrame()
	in.Hold(core.ActionFire)
	g.Step(in)
	if n := s.world.Count(KindBullet); n != 1 {
		t.Fatalf("Expected first shot immediately, got %d bullets", n)
	}

	// 0.2s cooldown at 60 ticks per second.
	for range 6 {
		g.Step(in)
	}
	if n := s.world.Count(KindBullet); n != 1 {
		t.Errorf("Expected cooldown to block, got %d bullets", n)
	}
	for range 8 {
		g.Step(in)
	}
	if n := s.world.Count(KindBullet); n != 2 {
		t.Errorf("Expected second shot after cooldown, got %d bullets", n)
	}
	if audio.count(CueShoot) != 2 {
		t.Errorf("Expected two shoot cues, got %d", audio.count(CueShoot))
	}
}

func TestPlayerClampedToBounds(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()

	in := core.NewInputFrame()
	in.Hold(core.ActionLeft)
	in.Hold(core.ActionDown)
	for range 120 {
		g.Step(in)
	}
	pos, _ := s.world.PlayerPos()
	if pos != core.V(-225, -340) {
		t.Errorf("Expected player clamped to (-225,-340), got %v", pos)
	}
}

func TestBlinkOpacity(t *testing.T) {
	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 1},
		{0.05, 1},
		{0.1, 0},
		{0.15, 0},
		{0.2, 1},
		{0.35, 0},
	}
	for _, tt := range tests {
		if got := blinkOpacity(tt.elapsed, 0.1); got != tt.want {
			t.Errorf("blinkOpacity(%v): expected %v, got %v", tt.elapsed, tt.want, got)
		}
	}
	if got := blinkOpacity(0.15, 0); got != 1 {
		t.Errorf("Expected opacity 1 for a zero period, got %v", got)
	}
}

func TestBlinkReportsOpacity(t *testing.T) {
	g, _, presenter := newPlayingGame(t)
	s := g.Session()
	pe, ship, _ := s.world.Player()

	for range 7 {
		g.Step(idle())
	}
	if ship.Opacity() != 0 || presenter.opacity[pe] != 0 {
		t.Errorf("Expected hidden ship during odd blink period, got %v", ship.Opacity())
	}
	for range 60 {
		g.Step(idle())
	}
	if ship.Invincible() {
		t.Fatal("Expected invincibility to expire")
	}
	if ship.Opacity() != 1 || presenter.opacity[pe] != 1 {
		t.Errorf("Expected visible ship after invincibility, got %v", ship.Opacity())
	}
}

func TestEnemyMovement(t *testing.T) {
	catalog := NewCatalog(config.DefaultShooterConfig())
	def := func(kind EnemyKind) *EnemyDef {
		d, _ := catalog.Lookup(kind)
		return d
	}

	straight := newEnemy(def("grunt"), core.V(0, 100), 1)
	straight.step(0.5, 200, 0, core.Vec2{}, false)
	if straight.Pos != core.V(0, 0) {
		t.Errorf("Expected straight enemy at (0,0), got %v", straight.Pos)
	}

	zig := newEnemy(def("weaver"), core.V(0, 100), 1)
	zig.step(0.1, 100, 0.3, core.Vec2{}, false)
	if zig.Pos.Y != 90 || zig.Pos.X == 0 {
		t.Errorf("Expected zigzag to sway while descending, got %v", zig.Pos)
	}

	homing := newEnemy(def("hunter"), core.V(0, 100), 1)
	homing.step(0.5, 200, 0, core.Vec2{}, false)
	if homing.Pos != core.V(0, 100) {
		t.Errorf("Expected homing enemy to hold without a player, got %v", homing.Pos)
	}
	homing.step(0.25, 200, 0, core.V(100, 100), true)
	if homing.Pos != core.V(50, 100) {
		t.Errorf("Expected homing enemy to approach the player, got %v", homing.Pos)
	}
}

func TestEnemiesLeaveField(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	e, _ := placeEnemy(s, "grunt", core.V(200, -378))

	g.Step(idle())
	if s.world.Alive(e) {
		t.Error("Expected enemy below the field removed")
	}
}

func TestEnemiesFireAtPlayer(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	placeEnemy(s, "grunt", core.V(200, 300))

	for range 61 {
		g.Step(idle())
	}
	enemyBullets := 0
	s.world.EachBullet(func(_ Entity, b *Bullet) {
		if b.Owner == OwnerEnemy {
			enemyBullets++
		}
	})
	if enemyBullets != 1 {
		t.Errorf("Expected one enemy bullet after a second, got %d", enemyBullets)
	}
}

func TestExplosionExpires(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()
	s.spawnExplosion(core.V(0, 0), ExplosionEnemy)
	s.world.Flush()

	// Four frames at 10 fps.
	for range 20 {
		g.Step(idle())
	}
	if s.world.Count(KindExplosion) != 1 {
		t.Fatal("Expected explosion still playing")
	}
	for range 10 {
		g.Step(idle())
	}
	if s.world.Count(KindExplosion) != 0 {
		t.Error("Expected explosion removed after its last frame")
	}
}

func TestSpawnerRespectsInterval(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	s := g.Session()

	for range 110 {
		g.Step(idle())
	}
	if n := s.world.Count(KindEnemy); n != 0 {
		t.Fatalf("Expected no enemies before the first interval, got %d", n)
	}
	for range 15 {
		g.Step(idle())
	}
	if n := s.world.Count(KindEnemy); n != 1 {
		t.Errorf("Expected one enemy after 2s, got %d", n)
	}
	s.world.EachEnemy(func(_ Entity, en *Enemy) {
		if en.Pos.Y > 340 || en.Pos.Y < 300 {
			t.Errorf("Expected enemy near the spawn line, got %v", en.Pos)
		}
	})
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, map[Kind]int, core.Vec2) {
		g := New(WithConfig(config.DefaultShooterConfig()), WithStartMode(ModePlaying))
		g.Reset(testConfig())
		var st core.GameState
		for i := range 1800 {
			in := core.NewInputFrame()
			in.Hold(core.ActionFire)
			if (i/90)%2 == 0 {
				in.Hold(core.ActionLeft)
			} else {
				in.Hold(core.ActionRight)
			}
			st = g.Step(in).State
		}
		pos, _ := g.Session().World().PlayerPos()
		return st, g.Session().World().Counts(), pos
	}

	st1, counts1, pos1 := run()
	st2, counts2, pos2 := run()

	if st1 != st2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", st1, st2)
	}
	if pos1 != pos2 {
		t.Errorf("Determinism failed: positions differ. Run1=%v, Run2=%v", pos1, pos2)
	}
	for k, n := range counts1 {
		if counts2[k] != n {
			t.Errorf("Determinism failed: kind %d counts differ. Run1=%d, Run2=%d", k, n, counts2[k])
		}
	}
}

func TestRenderDrawsField(t *testing.T) {
	g, _, _ := newPlayingGame(t)
	g.Step(idle())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "▲") {
		t.Error("Expected player glyph on screen")
	}
	if !strings.Contains(screen.Row(0), "┌") || !strings.Contains(screen.Row(23), "┘") {
		t.Errorf("Expected field border to span the screen, got %q / %q", screen.Row(0), screen.Row(23))
	}
}

func TestRenderTitle(t *testing.T) {
	g := New(WithConfig(config.DefaultShooterConfig()))
	g.Reset(testConfig())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter") {
		t.Error("Expected title prompt")
	}
}

func TestRegistryFactoryAppliesPreset(t *testing.T) {
	rg, err := registry.Create(GameID, registry.Env{Preset: "hard"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g := rg.(*Game)
	g.Reset(testConfig())

	s := g.Session()
	if s.cfg.Player.MaxHP != 2 || !s.cfg.Difficulty.Enabled {
		t.Errorf("Expected hard preset applied, got max hp %d enabled %v", s.cfg.Player.MaxHP, s.cfg.Difficulty.Enabled)
	}
	if g.Title() != "Vertical Shooter" || g.ID() != "shooter" {
		t.Errorf("Unexpected identity %q/%q", g.ID(), g.Title())
	}
}

func TestSetPresenterSwapsRunningSession(t *testing.T) {
	g, _, old := newPlayingGame(t)
	fresh := newRecordingPresenter()
	g.SetPresenter(fresh)

	g.Step(idle())
	if fresh.texts[TextScore] != "Score: 0" {
		t.Errorf("Expected HUD text on the new presenter, got %q", fresh.texts[TextScore])
	}
	if _, ok := old.texts[TextScore]; ok {
		t.Error("Expected the old presenter to stop receiving text")
	}
}

func TestStartStageSelection(t *testing.T) {
	tests := []struct {
		name      string
		stage     int
		wantIndex int
		wantWarn  bool
	}{
		{"first", 0, 0, false},
		{"last", 2, 2, false},
		{"past the end", 5, 0, true},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
			g := New(WithConfig(config.DefaultShooterConfig()), WithLogger(logger), WithStage(tt.stage))
			g.Reset(testConfig())

			if got := g.Session().Stages().Selected; got != tt.wantIndex {
				t.Errorf("Expected stage index %d, got %d", tt.wantIndex, got)
			}
			if warned := strings.Contains(buf.String(), "stage out of range"); warned != tt.wantWarn {
				t.Errorf("Expected warning=%v, log %q", tt.wantWarn, buf.String())
			}
		})
	}
}
