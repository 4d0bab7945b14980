package shooter

import "github.com/vovakirdan/vshooter/internal/core"

// ItemKind is a pickup type.
type ItemKind uint8

const (
	ItemRapidFire ItemKind = iota
	ItemPiercingShot
	ItemHeal
	itemKindCount
)

// Glyph returns the display character for an item.
func (k ItemKind) Glyph() rune {
	switch k {
	case ItemRapidFire:
		return 'R'
	case ItemPiercingShot:
		return 'P'
	case ItemHeal:
		return '♥'
	}
	return '?'
}

// Color returns the display color for an item.
func (k ItemKind) Color() core.Color {
	switch k {
	case ItemRapidFire:
		return core.ColorBrightYellow
	case ItemPiercingShot:
		return core.ColorBrightCyan
	case ItemHeal:
		return core.ColorBrightGreen
	}
	return core.ColorDefault
}

func (k ItemKind) String() string {
	switch k {
	case ItemRapidFire:
		return "RapidFire"
	case ItemPiercingShot:
		return "PiercingShot"
	case ItemHeal:
		return "Heal"
	}
	return "Unknown"
}

// Item is a stationary pickup.
type Item struct {
	Body
	Kind ItemKind
}

// ItemRules parameterizes Apply.
type ItemRules struct {
	RapidFireFactor  float64
	MinShootInterval float64
}

// Apply returns the player state after picking up an item. It is pure.
func Apply(p PlayerState, kind ItemKind, rules ItemRules) PlayerState {
	switch kind {
	case ItemRapidFire:
		factor := rules.RapidFireFactor
		if factor <= 0 || factor >= 1 {
			factor = 0.5
		}
		p.ShootInterval = max(p.ShootInterval*factor, rules.MinShootInterval)
	case ItemPiercingShot:
		p.Piercing = true
	case ItemHeal:
		p.HP = min(p.HP+1, p.MaxHP)
	}
	return p
}

func (s *Session) itemRules() ItemRules {
	return ItemRules{
		RapidFireFactor:  s.cfg.Items.RapidFireFactor,
		MinShootInterval: s.cfg.Player.MinShootInterval,
	}
}

// maybeDropItem rolls the drop chance and, on success, spawns a uniformly
// chosen item at pos.
func (s *Session) maybeDropItem(pos core.Vec2) {
	if s.rng.Float64() >= s.cfg.Items.DropChance {
		return
	}
	kind := ItemKind(s.rng.Intn(int(itemKindCount)))
	size := s.cfg.Items.Size
	s.world.SpawnItem(&Item{
		Body: Body{Pos: pos, Collider: Collider{Shape: Rectangle(size, size), Tag: TagItem}},
		Kind: kind,
	})
}
