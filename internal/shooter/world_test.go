package shooter

import (
	"testing"

	"github.com/vovakirdan/vshooter/internal/core"
)

func newTestItem() *Item {
	return &Item{Body: Body{Collider: Collider{Shape: Rectangle(20, 20), Tag: TagItem}}, Kind: ItemHeal}
}

func TestSpawnIsDeferredUntilFlush(t *testing.T) {
	w := NewWorld()
	e := w.SpawnItem(newTestItem())

	if w.Alive(e) {
		t.Error("Expected staged entity not to be alive before Flush")
	}
	if w.KindOf(e) != KindItem {
		t.Errorf("Expected staged entity kind item, got %d", w.KindOf(e))
	}
	seen := 0
	w.EachItem(func(Entity, *Item) { seen++ })
	if seen != 0 {
		t.Errorf("Expected staged entity hidden from queries, saw %d", seen)
	}

	w.Flush()
	if !w.Alive(e) {
		t.Error("Expected entity alive after Flush")
	}
	if w.Count(KindItem) != 1 {
		t.Errorf("Expected one item, got %d", w.Count(KindItem))
	}
}

func TestDespawnIsIdempotent(t *testing.T) {
	w := NewWorld()
	a := w.SpawnItem(newTestItem())
	b := w.SpawnItem(newTestItem())
	w.Flush()

	w.Despawn(a)
	if w.Alive(a) {
		t.Error("Expected pending despawn to hide the entity")
	}
	w.Despawn(a)
	w.Flush()

	// Both slots must be distinct after a double despawn.
	c := w.SpawnItem(newTestItem())
	d := w.SpawnItem(newTestItem())
	w.Flush()
	if c == d || c.id == d.id {
		t.Fatalf("Expected distinct handles, got %v and %v", c, d)
	}
	if !w.Alive(b) || !w.Alive(c) || !w.Alive(d) {
		t.Error("Expected remaining entities alive")
	}
	if w.Count(KindItem) != 3 {
		t.Errorf("Expected 3 items, got %d", w.Count(KindItem))
	}
}

func TestStaleHandleIsIgnored(t *testing.T) {
	w := NewWorld()
	old := w.SpawnItem(newTestItem())
	w.Flush()
	w.Despawn(old)
	w.Flush()

	reused := w.SpawnItem(newTestItem())
	w.Flush()
	if reused.id != old.id {
		t.Fatalf("Expected slot reuse, got ids %d and %d", old.id, reused.id)
	}

	w.Despawn(old)
	w.Flush()
	if !w.Alive(reused) {
		t.Error("Expected stale despawn to leave the new entity alone")
	}
	if w.Alive(old) {
		t.Error("Expected stale handle not alive")
	}
	if _, ok := w.Item(old); ok {
		t.Error("Expected no component for a stale handle")
	}
}

func TestSpawnAndDespawnInSameTick(t *testing.T) {
	w := NewWorld()
	e := w.SpawnItem(newTestItem())
	w.Despawn(e)
	w.Flush()

	if w.Alive(e) || w.Count(KindItem) != 0 {
		t.Error("Expected entity despawned before activation never to appear")
	}
}

func TestIterationFollowsSpawnOrder(t *testing.T) {
	w := NewWorld()
	var want []Entity
	for i := range 5 {
		it := newTestItem()
		it.Pos = core.V(float64(i), 0)
		want = append(want, w.SpawnItem(it))
	}
	w.Flush()
	w.Despawn(want[1])
	w.Flush()
	want = append(want[:1], want[2:]...)

	var got []Entity
	w.EachItem(func(e Entity, _ *Item) { got = append(got, e) })
	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestResetAndDespawnAll(t *testing.T) {
	w := NewWorld()
	e := w.SpawnItem(newTestItem())
	w.SpawnExplosion(&Explosion{})
	w.Flush()

	w.DespawnAll()
	if w.Alive(e) {
		t.Error("Expected DespawnAll to mark entities pending")
	}
	w.Flush()
	if len(w.Counts()) != 0 {
		t.Errorf("Expected empty world, got %v", w.Counts())
	}

	e = w.SpawnItem(newTestItem())
	w.Flush()
	w.Reset()
	if w.Alive(e) || len(w.Counts()) != 0 {
		t.Error("Expected Reset to drop entities immediately")
	}
	if !(Entity{}).IsZero() || e.IsZero() {
		t.Error("Expected only the zero handle to report IsZero")
	}
}
