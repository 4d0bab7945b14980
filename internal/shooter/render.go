package shooter

import (
	"fmt"
	"math"
	"unicode"

	"github.com/vovakirdan/vshooter/internal/core"
)

// viewport maps field coordinates onto screen cells.
type viewport struct {
	left, top  int
	cols, rows int
	fieldW     float64
	fieldH     float64
}

// newViewport fits the field into the screen below a one-row HUD, keeping the
// field's aspect with terminal cells counted as twice as tall as they are wide.
func newViewport(dst *core.Screen, fieldW, fieldH float64) viewport {
	rows := max(dst.Height()-2, 1)
	cols := int(math.Round(float64(rows) * fieldW / fieldH * 2))
	if maxCols := dst.Width() - 2; cols > maxCols {
		cols = max(maxCols, 1)
		rows = max(int(math.Round(float64(cols)*fieldH/fieldW/2)), 1)
	}
	return viewport{
		left:   (dst.Width() - cols) / 2,
		top:    1,
		cols:   cols,
		rows:   rows,
		fieldW: fieldW,
		fieldH: fieldH,
	}
}

// cell converts a field position to a screen cell. Positions outside the
// field report false.
func (v viewport) cell(p core.Vec2) (int, int, bool) {
	fx := (p.X + v.fieldW/2) / v.fieldW
	fy := (v.fieldH/2 - p.Y) / v.fieldH
	if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
		return 0, 0, false
	}
	return v.left + int(fx*float64(v.cols)), v.top + int(fy*float64(v.rows)), true
}

var explosionFrames = []rune{'*', '✶', '✸', '·'}

var backgrounds = map[string]struct {
	glyph   rune
	color   core.Color
	density int
}{
	"ground":   {'.', core.ColorGreen, 11},
	"ocean":    {'~', core.ColorBlue, 7},
	"universe": {'*', core.ColorGray, 17},
}

// Render draws the current mode into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.s == nil {
		return
	}
	s := g.s

	switch s.mode {
	case ModeTitle:
		s.renderTitle(dst)
	case ModeStageSelect:
		s.renderStageSelect(dst)
	default:
		s.renderField(dst)
	}
}

func (s *Session) renderTitle(dst *core.Screen) {
	y := dst.Height()/2 - 3
	dst.DrawTextCentered(y, "V E R T I C A L   S H O O T E R", core.ColorBrightCyan)
	dst.DrawTextCentered(y+2, "Press Enter or Space to start", core.ColorWhite)
	dst.DrawTextCentered(y+4, "Arrows/WASD move   Space fire   P pause   Q quit", core.ColorGray)
}

func (s *Session) renderStageSelect(dst *core.Screen) {
	y := dst.Height()/2 - len(s.stages.Stages) - 2
	dst.DrawTextCentered(y, "SELECT STAGE", core.ColorBrightYellow)
	for i, st := range s.stages.Stages {
		line := fmt.Sprintf("  %s  (%s, %d waves)", st.Name, st.Background, len(st.Waves))
		color := core.ColorWhite
		if i == s.stages.Selected {
			line = "> " + line[2:]
			color = core.ColorBrightCyan
		}
		dst.DrawTextCentered(y+2+i*2, line, color)
	}
	dst.DrawTextCentered(y+3+len(s.stages.Stages)*2, "Up/Down choose   Enter/Space play   Esc back", core.ColorGray)
}

func (s *Session) renderField(dst *core.Screen) {
	vp := newViewport(dst, s.cfg.Field.Width, s.cfg.Field.Height)
	dst.DrawBox(core.NewRect(vp.left-1, vp.top-1, vp.cols+2, vp.rows+2), core.ColorGray)
	s.renderBackground(dst, vp)

	s.world.EachItem(func(_ Entity, it *Item) {
		if x, y, ok := vp.cell(it.Pos); ok {
			dst.SetColored(x, y, it.Kind.Glyph(), it.Kind.Color())
		}
	})
	s.world.EachEnemy(func(_ Entity, en *Enemy) {
		if x, y, ok := vp.cell(en.Pos); ok {
			glyph := en.Glyph
			if en.Frame() == 1 {
				glyph = unicode.ToLower(glyph)
			}
			dst.SetColored(x, y, glyph, en.Color)
		}
	})
	s.world.EachBullet(func(_ Entity, b *Bullet) {
		if x, y, ok := vp.cell(b.Pos); ok {
			if b.Owner == OwnerPlayer {
				dst.SetColored(x, y, '|', core.ColorBrightYellow)
			} else {
				dst.SetColored(x, y, '•', core.ColorBrightMagenta)
			}
		}
	})
	if _, ship, ok := s.world.Player(); ok && ship.Opacity() > 0 {
		if x, y, ok := vp.cell(ship.Pos); ok {
			color := core.ColorBrightCyan
			if ship.State.Piercing {
				color = core.ColorBrightGreen
			}
			dst.SetColored(x, y, '▲', color)
		}
	}
	s.world.EachExplosion(func(_ Entity, ex *Explosion) {
		if x, y, ok := vp.cell(ex.Pos); ok {
			color := core.ColorOrange
			if ex.Source == ExplosionPlayer {
				color = core.ColorBrightRed
			}
			dst.SetColored(x, y, explosionFrames[ex.Frame()%len(explosionFrames)], color)
		}
	})

	mid := vp.top + vp.rows/2
	switch {
	case s.paused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, " Press P to resume ", core.ColorWhite)
	case s.mode == ModeClear:
		dst.DrawTextCentered(mid, " STAGE CLEAR ", core.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d ", s.score), core.ColorWhite)
		dst.DrawTextCentered(mid+2, " R restart   Enter stages ", core.ColorGray)
	case s.mode == ModeGameOver:
		dst.DrawTextCentered(mid, " GAME OVER ", core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d ", s.score), core.ColorWhite)
		dst.DrawTextCentered(mid+2, " R restart   Enter stages ", core.ColorGray)
	}
}

// renderBackground scrolls a sparse per-stage pattern down the field.
func (s *Session) renderBackground(dst *core.Screen, vp viewport) {
	bg, ok := backgrounds[s.background]
	if !ok {
		return
	}
	offset := int(s.clock * 4)
	for r := 0; r < vp.rows; r++ {
		for c := 0; c < vp.cols; c++ {
			h := (r-offset)*31 + c*17
			if h%bg.density == 0 {
				dst.SetColored(vp.left+c, vp.top+r, bg.glyph, bg.color)
			}
		}
	}
}
