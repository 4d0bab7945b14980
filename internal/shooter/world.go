package shooter

import "github.com/vovakirdan/vshooter/internal/core"

// Entity is a generation-checked handle into a World. The zero value never
// refers to a live entity.
type Entity struct {
	id  uint32
	gen uint32
}

// IsZero reports whether e is the zero handle.
func (e Entity) IsZero() bool {
	return e.gen == 0
}

// Kind identifies which typed store an entity lives in.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindBullet
	KindItem
	KindExplosion
)

type slotState uint8

const (
	slotFree    slotState = iota
	slotStaged            // spawned this tick, activated on Flush
	slotLive              // visible to queries
	slotDespawn           // despawn requested, removed on Flush
)

type slot struct {
	gen   uint32
	kind  Kind
	state slotState
}

// store keeps one component type in spawn order so iteration is
// deterministic for a given seed.
type store[T any] struct {
	order []Entity
	data  map[Entity]*T
}

func newStore[T any]() store[T] {
	return store[T]{data: make(map[Entity]*T)}
}

func (s *store[T]) insert(e Entity, v *T) {
	s.order = append(s.order, e)
	s.data[e] = v
}

func (s *store[T]) remove(e Entity) {
	if _, ok := s.data[e]; !ok {
		return
	}
	delete(s.data, e)
	for i, o := range s.order {
		if o == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *store[T]) reset() {
	s.order = s.order[:0]
	clear(s.data)
}

type staged struct {
	e        Entity
	activate func()
}

// World is the entity registry: an arena of handles plus one typed store per
// entity kind. Spawns and despawns requested during a tick are intents that
// take effect on Flush, so systems never observe a half-applied tick.
type World struct {
	slots   []slot
	free    []uint32
	staged  []staged
	pending []Entity

	players    store[Ship]
	enemies    store[Enemy]
	bullets    store[Bullet]
	items      store[Item]
	explosions store[Explosion]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		players:    newStore[Ship](),
		enemies:    newStore[Enemy](),
		bullets:    newStore[Bullet](),
		items:      newStore[Item](),
		explosions: newStore[Explosion](),
	}
}

func (w *World) alloc(kind Kind) Entity {
	var id uint32
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	sl := &w.slots[id]
	sl.gen++
	sl.kind = kind
	sl.state = slotStaged
	return Entity{id: id, gen: sl.gen}
}

func (w *World) slotOf(e Entity) *slot {
	if e.IsZero() || int(e.id) >= len(w.slots) {
		return nil
	}
	sl := &w.slots[e.id]
	if sl.gen != e.gen {
		return nil
	}
	return sl
}

func spawn[T any](w *World, kind Kind, st *store[T], v *T) Entity {
	e := w.alloc(kind)
	w.staged = append(w.staged, staged{e: e, activate: func() { st.insert(e, v) }})
	return e
}

// SpawnPlayer stages a player ship.
func (w *World) SpawnPlayer(s *Ship) Entity { return spawn(w, KindPlayer, &w.players, s) }

// SpawnEnemy stages an enemy.
func (w *World) SpawnEnemy(en *Enemy) Entity { return spawn(w, KindEnemy, &w.enemies, en) }

// SpawnBullet stages a bullet.
func (w *World) SpawnBullet(b *Bullet) Entity { return spawn(w, KindBullet, &w.bullets, b) }

// SpawnItem stages an item pickup.
func (w *World) SpawnItem(it *Item) Entity { return spawn(w, KindItem, &w.items, it) }

// SpawnExplosion stages an explosion effect.
func (w *World) SpawnExplosion(x *Explosion) Entity { return spawn(w, KindExplosion, &w.explosions, x) }

// Despawn records a despawn intent. Stale handles and entities that are
// already pending removal are ignored.
func (w *World) Despawn(e Entity) {
	sl := w.slotOf(e)
	if sl == nil {
		return
	}
	switch sl.state {
	case slotLive, slotStaged:
		sl.state = slotDespawn
		w.pending = append(w.pending, e)
	}
}

// Alive reports whether e refers to a live entity that is not pending removal.
func (w *World) Alive(e Entity) bool {
	sl := w.slotOf(e)
	return sl != nil && sl.state == slotLive
}

// KindOf returns the kind of a live or staged entity.
func (w *World) KindOf(e Entity) Kind {
	sl := w.slotOf(e)
	if sl == nil || sl.state == slotFree {
		return KindNone
	}
	return sl.kind
}

// Flush applies pending despawns, then activates staged spawns.
func (w *World) Flush() {
	for _, e := range w.pending {
		sl := w.slotOf(e)
		if sl == nil || sl.state != slotDespawn {
			continue
		}
		switch sl.kind {
		case KindPlayer:
			w.players.remove(e)
		case KindEnemy:
			w.enemies.remove(e)
		case KindBullet:
			w.bullets.remove(e)
		case KindItem:
			w.items.remove(e)
		case KindExplosion:
			w.explosions.remove(e)
		}
		sl.state = slotFree
		sl.kind = KindNone
		w.free = append(w.free, e.id)
	}
	w.pending = w.pending[:0]

	for _, s := range w.staged {
		sl := w.slotOf(s.e)
		if sl == nil || sl.state != slotStaged {
			continue
		}
		s.activate()
		sl.state = slotLive
	}
	w.staged = w.staged[:0]
}

// DespawnAll requests removal of every entity.
func (w *World) DespawnAll() {
	for i := range w.slots {
		sl := &w.slots[i]
		if sl.state == slotLive || sl.state == slotStaged {
			w.Despawn(Entity{id: uint32(i), gen: sl.gen})
		}
	}
}

// Reset drops every entity immediately. Handles issued before Reset stay stale.
func (w *World) Reset() {
	for i := range w.slots {
		sl := &w.slots[i]
		if sl.state != slotFree {
			sl.state = slotFree
			sl.kind = KindNone
			w.free = append(w.free, uint32(i))
		}
	}
	w.staged = w.staged[:0]
	w.pending = w.pending[:0]
	w.players.reset()
	w.enemies.reset()
	w.bullets.reset()
	w.items.reset()
	w.explosions.reset()
}

// Player returns the live player ship, if any.
func (w *World) Player() (Entity, *Ship, bool) {
	for _, e := range w.players.order {
		if w.Alive(e) {
			return e, w.players.data[e], true
		}
	}
	return Entity{}, nil, false
}

// PlayerPos returns the live player's position.
func (w *World) PlayerPos() (core.Vec2, bool) {
	_, s, ok := w.Player()
	if !ok {
		return core.Vec2{}, false
	}
	return s.Pos, true
}

func each[T any](w *World, st *store[T], fn func(Entity, *T)) {
	for _, e := range st.order {
		if w.Alive(e) {
			fn(e, st.data[e])
		}
	}
}

// EachEnemy calls fn for every live enemy in spawn order.
func (w *World) EachEnemy(fn func(Entity, *Enemy)) { each(w, &w.enemies, fn) }

// EachBullet calls fn for every live bullet in spawn order.
func (w *World) EachBullet(fn func(Entity, *Bullet)) { each(w, &w.bullets, fn) }

// EachItem calls fn for every live item in spawn order.
func (w *World) EachItem(fn func(Entity, *Item)) { each(w, &w.items, fn) }

// EachExplosion calls fn for every live explosion in spawn order.
func (w *World) EachExplosion(fn func(Entity, *Explosion)) { each(w, &w.explosions, fn) }

// Ship returns the player component for a live handle.
func (w *World) Ship(e Entity) (*Ship, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	v, ok := w.players.data[e]
	return v, ok
}

// Enemy returns the enemy component for a live handle.
func (w *World) Enemy(e Entity) (*Enemy, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	v, ok := w.enemies.data[e]
	return v, ok
}

// Bullet returns the bullet component for a live handle.
func (w *World) Bullet(e Entity) (*Bullet, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	v, ok := w.bullets.data[e]
	return v, ok
}

// Item returns the item component for a live handle.
func (w *World) Item(e Entity) (*Item, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	v, ok := w.items.data[e]
	return v, ok
}

// Counts reports the number of live entities per kind.
func (w *World) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, sl := range w.slots {
		if sl.state == slotLive {
			counts[sl.kind]++
		}
	}
	return counts
}

// Count returns the number of live entities of one kind.
func (w *World) Count(k Kind) int {
	return w.Counts()[k]
}

// collidable pairs an entity with its body for the collision pass.
type collidable struct {
	e    Entity
	body *Body
}

// collidables snapshots every live collidable entity in a stable order.
func (w *World) collidables() []collidable {
	out := make([]collidable, 0, len(w.players.order)+len(w.enemies.order)+len(w.bullets.order)+len(w.items.order))
	each(w, &w.players, func(e Entity, s *Ship) { out = append(out, collidable{e, &s.Body}) })
	each(w, &w.enemies, func(e Entity, en *Enemy) { out = append(out, collidable{e, &en.Body}) })
	each(w, &w.bullets, func(e Entity, b *Bullet) { out = append(out, collidable{e, &b.Body}) })
	each(w, &w.items, func(e Entity, it *Item) { out = append(out, collidable{e, &it.Body}) })
	return out
}
