package shooter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/vshooter/internal/core"
)

// Mode is the top-level game mode.
type Mode int

const (
	ModeTitle Mode = iota
	ModeStageSelect
	ModePlaying
	ModeClear
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeStageSelect:
		return "stage_select"
	case ModePlaying:
		return "playing"
	case ModeClear:
		return "clear"
	case ModeGameOver:
		return "game_over"
	}
	return "unknown"
}

// modeHooks are the lifecycle callbacks of one mode. update returns the next
// mode and whether a transition is requested.
type modeHooks struct {
	enter  func(s *Session)
	update func(s *Session, in core.InputFrame, dt float64) (Mode, bool)
	exit   func(s *Session)
}

var modes = map[Mode]modeHooks{
	ModeTitle: {
		update: func(s *Session, in core.InputFrame, _ float64) (Mode, bool) {
			if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
				return ModeStageSelect, true
			}
			return 0, false
		},
	},
	ModeStageSelect: {
		enter:  func(s *Session) { s.showStageSelect() },
		update: updateStageSelect,
		exit:   func(s *Session) { s.presenter.SetText(TextBanner, "") },
	},
	ModePlaying: {
		enter:  enterPlaying,
		update: updatePlaying,
		exit:   exitPlaying,
	},
	ModeClear: {
		enter: func(s *Session) {
			s.audio.PlayCue(CueClear, s.cfg.Audio.Volume)
			s.presenter.SetText(TextBanner, fmt.Sprintf("STAGE CLEAR  score %d", s.score))
		},
		update: updateFinished,
		exit: func(s *Session) {
			s.audio.StopAll()
			s.presenter.SetText(TextBanner, "")
		},
	},
	ModeGameOver: {
		enter: func(s *Session) {
			s.presenter.SetText(TextBanner, fmt.Sprintf("GAME OVER  score %d", s.score))
		},
		update: updateFinished,
		exit:   func(s *Session) { s.presenter.SetText(TextBanner, "") },
	},
}

// transition runs the exit hook of the current mode and the enter hook of next.
func (s *Session) transition(next Mode) {
	s.log.Debug("mode transition", "from", s.mode, "to", next)
	if h := modes[s.mode]; h.exit != nil {
		h.exit(s)
	}
	s.mode = next
	if h := modes[next]; h.enter != nil {
		h.enter(s)
	}
}

// evaluateMode runs the current mode's update hook and applies any requested
// transition.
func (s *Session) evaluateMode(in core.InputFrame, dt float64) {
	h := modes[s.mode]
	if h.update == nil {
		return
	}
	if next, ok := h.update(s, in, dt); ok {
		s.transition(next)
	}
}

func updateStageSelect(s *Session, in core.InputFrame, _ float64) (Mode, bool) {
	switch {
	case in.Has(core.ActionUp):
		s.stages.MoveCursor(-1)
		s.showStageSelect()
	case in.Has(core.ActionDown):
		s.stages.MoveCursor(1)
		s.showStageSelect()
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire):
		return ModePlaying, true
	case in.Has(core.ActionBack):
		return ModeTitle, true
	}
	return 0, false
}

func (s *Session) showStageSelect() {
	names := make([]string, len(s.stages.Stages))
	for i, st := range s.stages.Stages {
		cursor := "  "
		if i == s.stages.Selected {
			cursor = "> "
		}
		names[i] = cursor + st.Name
	}
	s.presenter.SetText(TextBanner, strings.Join(names, "\n"))
}

func enterPlaying(s *Session) {
	stage := s.stages.Active()
	stage.ResetCounters()

	s.world.Reset()
	s.score = 0
	s.playTicks = 0
	s.paused = false
	s.stageCleared = false
	s.playerDead = false
	s.deadTimer = core.Timer{}
	s.background = stage.Background
	s.spawnTimer = core.NewTimer(s.spawnInterval(stage.ActiveWave()), core.TimerRepeating)
	s.spawnPlayer()
	s.hud = hudCache{}

	s.presenter.SetText(TextStage, stage.Name)
	s.log.Info("stage started", "stage", stage.Name, "background", stage.Background)
}

func updatePlaying(s *Session, in core.InputFrame, dt float64) (Mode, bool) {
	if s.stageCleared {
		return ModeClear, true
	}
	if s.playerDead {
		s.deadTimer.Tick(dt)
		if s.deadTimer.Finished() {
			return ModeGameOver, true
		}
	}
	s.refreshHUD()
	return 0, false
}

// exitPlaying tears down every gameplay entity and the HUD.
func exitPlaying(s *Session) {
	s.world.DespawnAll()
	s.paused = false
	s.audio.StopAll()
	for _, slot := range []TextSlot{TextScore, TextHearts, TextWave, TextStage} {
		s.presenter.SetText(slot, "")
	}
	s.hud = hudCache{}
}

func updateFinished(s *Session, in core.InputFrame, _ float64) (Mode, bool) {
	switch {
	case in.Has(core.ActionRestart):
		return ModePlaying, true
	case in.Has(core.ActionBack), in.Has(core.ActionConfirm):
		return ModeStageSelect, true
	}
	return 0, false
}

// hudCache suppresses presenter calls for unchanged text.
type hudCache struct {
	score  int
	hp     int
	wave   int
	primed bool
}

func (s *Session) refreshHUD() {
	hp := 0
	if _, ship, ok := s.world.Player(); ok {
		hp = ship.State.HP
	}
	wave := s.stages.Active().Current + 1

	if s.hud.primed && s.hud.score == s.score && s.hud.hp == hp && s.hud.wave == wave {
		return
	}
	if !s.hud.primed || s.hud.score != s.score {
		s.presenter.SetText(TextScore, fmt.Sprintf("Score: %d", s.score))
	}
	if !s.hud.primed || s.hud.hp != hp {
		s.presenter.SetText(TextHearts, Hearts(hp))
	}
	if !s.hud.primed || s.hud.wave != wave {
		s.presenter.SetText(TextWave, fmt.Sprintf("Wave %d/%d", wave, len(s.stages.Active().Waves)))
	}
	s.hud = hudCache{score: s.score, hp: hp, wave: wave, primed: true}
}

// Hearts renders hit points as heart glyphs.
func Hearts(hp int) string {
	return strings.Repeat("♥", max(hp, 0))
}
