// Package audio plays shooter sound cues through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/vshooter/internal/shooter"
)

// SampleRate is the output sample rate.
const SampleRate = beep.SampleRate(44100)

// Player mixes cue streamers into a single speaker stream.
// A Player that failed to initialize silently drops every cue.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         *log.Logger
}

// NewPlayer creates an uninitialized player.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{mixer: &beep.Mixer{}, log: logger}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayCue starts a cue. It never blocks on playback.
func (p *Player) PlayCue(c shooter.Cue, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Synthesize(c, SampleRate, volume)
	if s == nil {
		p.log.Debug("no sound for cue", "cue", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// StopAll silences every playing cue.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Open returns a speaker-backed player, or a silent one when muted or when
// no audio device is available.
func Open(muted bool, logger *log.Logger) shooter.Audio {
	if muted {
		return Silent{}
	}
	p := NewPlayer(logger)
	if err := p.Init(); err != nil {
		p.log.Warn("audio unavailable, continuing without sound", "err", err)
		return Silent{}
	}
	return p
}

// Silent discards every cue.
type Silent struct{}

func (Silent) PlayCue(shooter.Cue, float64) {}
func (Silent) StopAll()                     {}
