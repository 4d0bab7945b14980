package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/vshooter/internal/core"
	"github.com/vovakirdan/vshooter/internal/registry"
	"github.com/vovakirdan/vshooter/internal/shooter"
	"github.com/vovakirdan/vshooter/internal/storage"
)

const modePlaying = "playing"

// RunSaver persists finished runs.
type RunSaver interface {
	SaveRun(r storage.Run) (string, error)
}

// presenterSetter is implemented by games that report HUD text to the platform.
type presenterSetter interface {
	SetPresenter(p shooter.Presenter)
}

// runState tracks the attempt in progress so it is saved exactly once.
type runState struct {
	id     string
	ticks  int
	active bool
}

// Model is the Bubble Tea model that drives one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	status     *StatusBar
	store      RunSaver
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	run        *runState
	quitting   bool
	log        *log.Logger
}

// NewModel creates a model for game. store may be nil, in which case runs are
// not recorded.
func NewModel(game registry.Game, store RunSaver, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	status := NewStatusBar()
	if ps, ok := game.(presenterSetter); ok {
		ps.SetPresenter(status)
	}

	// The bottom row belongs to the status bar.
	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		status:     status,
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		run:        &runState{},
		log:        logger,
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame, time.Now()) {
		m.endRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only resizes the buffer: the play field is resolution
// independent, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-1, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keys.FillHeld(&m.inputFrame, now)

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.trackRun(prev)

	if result.Quit {
		m.endRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// trackRun starts a run when play begins and saves it when it finishes.
func (m *Model) trackRun(prev core.GameState) {
	st := m.gameState
	switch {
	case st.Mode == modePlaying && prev.Mode != modePlaying:
		m.run.id = uuid.NewString()
		m.run.ticks = 1
		m.run.active = true
		m.keys.Release()
		m.log.Debug("run started", "run", m.run.id, "stage", st.Stage)
	case st.Mode == modePlaying && !st.Paused:
		m.run.ticks++
	}

	switch {
	case st.Cleared:
		m.endRun(storage.OutcomeClear)
	case st.GameOver:
		m.endRun(storage.OutcomeGameOver)
	}
}

// endRun saves the active run. Abandoned runs without points are dropped.
func (m *Model) endRun(outcome storage.Outcome) {
	if !m.run.active {
		return
	}
	m.run.active = false

	st := m.gameState
	if outcome == storage.OutcomeQuit && st.Score == 0 {
		return
	}
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		RunID:   m.run.id,
		Stage:   st.Stage,
		Score:   st.Score,
		Wave:    st.Wave,
		Outcome: outcome,
		Ticks:   m.run.ticks,
	})
	if err != nil {
		m.log.Error("cannot save run", "err", err)
		return
	}
	m.log.Info("run saved", "run", id, "stage", st.Stage, "score", st.Score, "outcome", outcome)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderFrame(m.screen, m.status)
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, store RunSaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
