package shooter

// Cue names a sound effect.
type Cue int

const (
	CueShoot Cue = iota
	CueDamage
	CueExplosion
	CuePickup
	CueClear
)

func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueDamage:
		return "damage"
	case CueExplosion:
		return "explosion"
	case CuePickup:
		return "pickup"
	case CueClear:
		return "clear"
	}
	return "unknown"
}

// Audio plays fire-and-forget sound cues.
type Audio interface {
	PlayCue(c Cue, volume float64)
	StopAll()
}

// TextSlot names a piece of HUD text.
type TextSlot int

const (
	TextScore TextSlot = iota
	TextHearts
	TextWave
	TextStage
	TextBanner
)

// Presenter receives visual state the simulation does not draw itself.
type Presenter interface {
	SetOpacity(e Entity, alpha float64)
	SetText(slot TextSlot, text string)
}

type nopAudio struct{}

func (nopAudio) PlayCue(Cue, float64) {}
func (nopAudio) StopAll()             {}

type nopPresenter struct{}

func (nopPresenter) SetOpacity(Entity, float64) {}
func (nopPresenter) SetText(TextSlot, string)   {}
