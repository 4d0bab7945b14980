package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vshooter/internal/shooter"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	heartsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("236"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("236"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("236")).Bold(true)
	statusLayout = []shooter.TextSlot{shooter.TextStage, shooter.TextScore, shooter.TextHearts, shooter.TextWave}
)

// StatusBar is the one-line HUD under the play field. It receives text and
// ship opacity from the simulation through the shooter.Presenter interface.
type StatusBar struct {
	texts   map[shooter.TextSlot]string
	visible bool
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{texts: make(map[shooter.TextSlot]string), visible: true}
}

// SetText implements shooter.Presenter.
func (b *StatusBar) SetText(slot shooter.TextSlot, text string) {
	if text == "" {
		delete(b.texts, slot)
		return
	}
	b.texts[slot] = text
}

// SetOpacity implements shooter.Presenter. The hearts blink with the ship.
func (b *StatusBar) SetOpacity(_ shooter.Entity, alpha float64) {
	b.visible = alpha > 0
}

// Text returns the current text of a slot.
func (b *StatusBar) Text(slot shooter.TextSlot) string {
	return b.texts[slot]
}

// View renders the bar padded to width.
func (b *StatusBar) View(width int) string {
	var parts []string
	for _, slot := range statusLayout {
		text, ok := b.texts[slot]
		if !ok {
			continue
		}
		switch {
		case slot == shooter.TextHearts && !b.visible:
			parts = append(parts, dimStyle.Render(text))
		case slot == shooter.TextHearts:
			parts = append(parts, heartsStyle.Render(text))
		default:
			parts = append(parts, statusStyle.Render(text))
		}
	}
	left := statusStyle.Render(" ") + strings.Join(parts, statusStyle.Render("  │  "))

	right := ""
	if banner, ok := b.texts[shooter.TextBanner]; ok {
		// Multi-line banners (the stage list) collapse onto the bar.
		right = bannerStyle.Render(strings.Join(strings.Fields(strings.ReplaceAll(banner, "\n", "   ")), " ") + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left + right)
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}
