package resource

import (
	"testing"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

func newTestResource(reg *entity.Registry, kind Kind, respawn float64) *Resource {
	r := New(Config{
		Registry:     reg,
		Kind:         kind,
		Position:     vec.Vec3{X: 5},
		RespawnDelay: respawn,
	})
	reg.Add(r)
	reg.Commit()
	return r
}

func TestDepletionDeactivates(t *testing.T) {
	reg := entity.NewRegistry()
	r := newTestResource(reg, KindBush, 10)

	r.TakeDamage(MaxHealthFor(KindBush), nil)
	if r.Active() {
		t.Fatal("expected resource inactive after depletion")
	}

	// Hits on a depleted resource are ignored.
	before := r.Health().Current()
	r.TakeDamage(5, nil)
	if r.Health().Current() != before {
		t.Fatal("expected inactive resource to ignore damage")
	}
}

func TestRespawnRestoresFullHealth(t *testing.T) {
	reg := entity.NewRegistry()
	r := newTestResource(reg, KindTree, 2)

	r.TakeDamage(MaxHealthFor(KindTree), nil)
	for i := 0; i < 41; i++ { // just past 2s at 20 Hz
		reg.Update(0.05)
	}

	if !r.Active() {
		t.Fatal("expected resource active after the respawn delay")
	}
	if r.Health().Current() != MaxHealthFor(KindTree) {
		t.Fatalf("expected full health after respawn, got %.1f", r.Health().Current())
	}
	if _, ok := reg.ByID(r.ID()); !ok {
		t.Fatal("expected a respawning resource to stay registered")
	}
}

func TestNonRespawningResourceFadesAndRemovesItself(t *testing.T) {
	reg := entity.NewRegistry()
	r := newTestResource(reg, KindRock, 0)

	r.TakeDamage(MaxHealthFor(KindRock), nil)
	for i := 0; i < int(removalFadeDuration/0.05)+2; i++ {
		reg.Update(0.05)
	}

	if _, ok := reg.ByID(r.ID()); ok {
		t.Fatal("expected non-respawning resource removed after its fade")
	}
}

func TestDepletionCycleCanRepeat(t *testing.T) {
	reg := entity.NewRegistry()
	r := newTestResource(reg, KindBush, 1)

	for cycle := 0; cycle < 3; cycle++ {
		r.TakeDamage(MaxHealthFor(KindBush), nil)
		if r.Active() {
			t.Fatalf("cycle %d: expected deactivation", cycle)
		}
		for i := 0; i < 21; i++ {
			reg.Update(0.05)
		}
		if !r.Active() {
			t.Fatalf("cycle %d: expected respawn", cycle)
		}
	}
}
