// Package shooter implements a vertical arcade shooter: a player ship fights
// waves of enemies across selectable stages, collecting items that change how
// it fires. The simulation is a fixed-step tick over an entity World; audio
// and HUD text leave the package through the Audio and Presenter interfaces.
package shooter

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vshooter/internal/config"
	"github.com/vovakirdan/vshooter/internal/core"
	"github.com/vovakirdan/vshooter/internal/registry"
)

// GameID is the registry identifier of the shooter.
const GameID = "shooter"

// Session is the explicit simulation context every system receives.
type Session struct {
	cfg        config.ShooterConfig
	catalog    *Catalog
	stages     *StageDatabase
	world      *World
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	audio      Audio
	presenter  Presenter
	log        *log.Logger

	mode         Mode
	paused       bool
	clock        float64 // simulated seconds since Reset
	playTicks    int     // ticks spent in Playing since the stage started
	score        int
	background   string
	spawnTimer   core.Timer
	deadTimer    core.Timer
	playerDead   bool
	stageCleared bool
	hud          hudCache
}

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration on Reset.
func WithConfig(cfg config.ShooterConfig) Option {
	return func(g *Game) { g.cfg = &cfg }
}

// WithAudio sets the audio collaborator.
func WithAudio(a Audio) Option {
	return func(g *Game) { g.audio = a }
}

// WithPresenter sets the presenter collaborator.
func WithPresenter(p Presenter) Option {
	return func(g *Game) { g.presenter = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfigPath loads configuration from path on Reset.
func WithConfigPath(path string) Option {
	return func(g *Game) { g.configPath = path }
}

// WithPreset applies a difficulty preset to the loaded configuration.
func WithPreset(name string) Option {
	return func(g *Game) { g.preset = name }
}

// WithStartMode starts the session in a mode other than the title screen.
// ModePlaying starts the selected stage immediately.
func WithStartMode(m Mode) Option {
	return func(g *Game) { g.startMode = m }
}

// WithStage preselects a stage by index.
func WithStage(i int) Option {
	return func(g *Game) { g.startStage = i }
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	cfg        *config.ShooterConfig
	configPath string
	preset     string
	audio      Audio
	presenter  Presenter
	logger     *log.Logger
	startMode  Mode
	startStage int

	s  *Session
	dt float64
}

// New creates a shooter. Configuration is loaded on Reset unless WithConfig
// is given.
func New(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Vertical Shooter" }

// SetAudio replaces the audio collaborator, including for the running session.
func (g *Game) SetAudio(a Audio) {
	g.audio = a
	if g.s != nil && a != nil && g.s.cfg.Audio.Enabled {
		g.s.audio = a
	}
}

// SetPresenter replaces the presenter, including for the running session.
func (g *Game) SetPresenter(p Presenter) {
	g.presenter = p
	if g.s != nil && p != nil {
		g.s.presenter = p
	}
}

// Reset builds a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	logger := g.logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}

	var cfg config.ShooterConfig
	if g.cfg != nil {
		cfg = *g.cfg
	} else {
		loaded, err := config.LoadShooter(g.configPath)
		if err != nil {
			logger.Warn("using default config", "err", err)
			loaded = config.DefaultShooterConfig()
		}
		cfg = loaded
	}
	if g.preset != "" {
		if p, ok := config.ParsePreset(g.preset); ok {
			config.ApplyShooterPreset(&cfg, p)
		} else {
			logger.Warn("unknown difficulty preset", "preset", g.preset)
		}
	}
	var audio Audio = nopAudio{}
	if g.audio != nil {
		audio = g.audio
	}
	if !cfg.Audio.Enabled {
		audio = nopAudio{}
	}
	var presenter Presenter = nopPresenter{}
	if g.presenter != nil {
		presenter = g.presenter
	}

	stages := NewStageDatabase(cfg.Stages)
	if len(stages.Stages) == 0 {
		stages = NewStageDatabase(config.DefaultShooterConfig().Stages)
	}
	switch {
	case g.startStage >= len(stages.Stages) || g.startStage < 0:
		logger.Warn("stage out of range, starting the first stage",
			"stage", g.startStage+1, "stages", len(stages.Stages))
	case g.startStage > 0:
		stages.Selected = g.startStage
	}

	g.dt = rc.FrameDelta()
	g.s = &Session{
		cfg:        cfg,
		catalog:    NewCatalog(cfg),
		stages:     stages,
		world:      NewWorld(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(rc.Seed)),
		audio:      audio,
		presenter:  presenter,
		log:        logger,
		mode:       ModeTitle,
	}

	if g.startMode != ModeTitle {
		g.s.transition(g.startMode)
		g.s.world.Flush()
	}
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.s == nil {
		g.Reset(core.DefaultConfig())
	}
	g.s.step(in, g.dt)
	return core.StepResult{State: g.State()}
}

// step runs one tick: input, spawning, movement, collisions, progression,
// mode transitions and finally the deferred world mutations.
func (s *Session) step(in core.InputFrame, dt float64) {
	s.clock += dt

	if s.mode == ModePlaying && in.Has(core.ActionPause) {
		s.paused = !s.paused
	}

	if s.mode == ModePlaying && !s.paused {
		s.playTicks++
		s.updatePlayer(dt, in)
		s.updateSpawner(dt)
		s.moveEnemies(dt)
		s.moveBullets(dt)
		s.tickExplosions(dt)
		s.resolveCollisions()
		s.progressWave()
	}

	if !s.paused {
		s.evaluateMode(in, dt)
	}
	s.world.Flush()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.s == nil {
		return core.GameState{Mode: ModeTitle.String()}
	}
	s := g.s
	st := core.GameState{
		Mode:     s.mode.String(),
		Score:    s.score,
		Paused:   s.paused,
		Cleared:  s.mode == ModeClear,
		GameOver: s.mode == ModeGameOver,
	}
	if len(s.stages.Stages) > 0 {
		stage := s.stages.Active()
		st.Stage = stage.Name
		st.Wave = stage.Current + 1
	}
	return st
}

// Session exposes the simulation context, mainly for tests and tooling.
func (g *Game) Session() *Session {
	return g.s
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// World returns the entity registry.
func (s *Session) World() *World { return s.world }

// Stages returns the stage database.
func (s *Session) Stages() *StageDatabase { return s.stages }

// Background returns the active stage background name.
func (s *Session) Background() string { return s.background }

func init() {
	registry.Register(GameID, func(env registry.Env) registry.Game {
		return New(
			WithConfigPath(env.ConfigPath),
			WithPreset(env.Preset),
			WithLogger(env.Logger),
		)
	})
}
