package sim

import (
	"testing"

	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/resource"
	"github.com/jmercer/vale/internal/vec"
)

func newTestSim(t *testing.T) (*Simulation, *agent.Agent, *agent.Agent) {
	t.Helper()
	s := New(1)
	a := agent.New(agent.Config{
		Registry: s.Registry,
		RNG:      s.RNG,
		Kind:     entity.KindNPC,
		Name:     "Aldric",
		OnEvent:  s.Emit,
	})
	b := agent.New(agent.Config{
		Registry:   s.Registry,
		RNG:        s.RNG,
		Kind:       entity.KindNPC,
		Name:       "Brenna",
		Position:   vec.Vec3{X: 2},
		Profession: agent.ProfessionGuard,
		OnEvent:    s.Emit,
	})
	s.Registry.Add(a)
	s.Registry.Add(b)
	s.Registry.Commit()
	return s, a, b
}

func TestEnqueuedCommandAppliesOnNextTick(t *testing.T) {
	s, a, _ := newTestSim(t)

	s.Enqueue(Command{AgentID: a.ID(), Kind: CommandMoveTo, Position: vec.Vec3{X: 10}})
	if a.Moving() {
		t.Fatal("expected command deferred until the next tick")
	}

	s.Update(0.05)
	if !a.Moving() {
		t.Fatal("expected command applied during the tick")
	}
}

func TestInvalidCommandsAreDroppedSilently(t *testing.T) {
	s, a, _ := newTestSim(t)

	s.Enqueue(Command{AgentID: 9999, Kind: CommandMoveTo})
	s.Enqueue(Command{AgentID: a.ID(), Kind: CommandAttack, TargetID: 9999})
	s.Update(0.05)

	if a.InCombat() {
		t.Fatal("expected attack on a missing target to be rejected")
	}
}

func TestAttackCommandEngagesCombat(t *testing.T) {
	s, a, b := newTestSim(t)

	s.Enqueue(Command{AgentID: a.ID(), Kind: CommandAttack, TargetID: b.ID()})
	s.Update(0.05)

	if !a.InCombat() || a.CombatTarget() != b.ID() {
		t.Fatalf("expected combat against %d, got %d", b.ID(), a.CombatTarget())
	}
}

func TestDamageCommandRoutesThroughReaction(t *testing.T) {
	s, a, b := newTestSim(t)

	s.Enqueue(Command{AgentID: a.ID(), Kind: CommandDamage, Amount: 10, TargetID: b.ID()})
	s.Update(0.05)

	if a.Health().Current() != a.Health().Max()-10 {
		t.Fatalf("expected 10 damage, health %.1f", a.Health().Current())
	}
	if a.CombatTarget() != b.ID() {
		t.Fatal("expected retaliation against the attributed attacker")
	}
}

type captureRecorder struct {
	batches [][]Event
}

func (c *captureRecorder) Record(events []Event) {
	batch := make([]Event, len(events))
	copy(batch, events)
	c.batches = append(c.batches, batch)
}

func TestEventsFlushToRecorderOncePerTick(t *testing.T) {
	s, _, _ := newTestSim(t)
	rec := &captureRecorder{}
	s.SetRecorder(rec)

	s.Emit("speech", "Aldric says hello")
	s.Emit("speech", "Brenna answers")
	s.Update(0.05)
	s.Update(0.05)

	if len(rec.batches) != 1 {
		t.Fatalf("expected one flushed batch, got %d", len(rec.batches))
	}
	if len(rec.batches[0]) != 2 {
		t.Fatalf("expected two events in the batch, got %d", len(rec.batches[0]))
	}
}

func TestRecentEventsReturnsTail(t *testing.T) {
	s, _, _ := newTestSim(t)
	for i := 0; i < 30; i++ {
		s.Emit("combat", "clang")
	}

	events := s.RecentEvents(20)
	if len(events) != 20 {
		t.Fatalf("expected 20 events, got %d", len(events))
	}
}

type countingHook struct {
	ticks int
	limit int
}

func (h *countingHook) Tick(dt float64) bool {
	h.ticks++
	return h.ticks < h.limit
}

func TestHooksRunUntilFinished(t *testing.T) {
	s, _, _ := newTestSim(t)
	h := &countingHook{limit: 3}
	s.AddHook(h)

	for i := 0; i < 10; i++ {
		s.Update(0.05)
	}
	if h.ticks != 3 {
		t.Fatalf("expected hook dropped after 3 ticks, ran %d", h.ticks)
	}
}

func TestSnapshotReflectsEntities(t *testing.T) {
	s, a, _ := newTestSim(t)
	s.Registry.Add(resource.New(resource.Config{
		Registry: s.Registry,
		Kind:     resource.KindTree,
		Position: vec.Vec3{X: 8},
	}))
	s.Update(0.05)

	snap := s.Snapshot()
	if snap.Tick != 1 {
		t.Fatalf("expected tick 1, got %d", snap.Tick)
	}
	if len(snap.Entities) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(snap.Entities))
	}

	var found bool
	for _, v := range snap.Entities {
		if v.ID == a.ID() {
			found = true
			if v.Health != 1 {
				t.Fatalf("expected full health fraction, got %.2f", v.Health)
			}
			if v.Kind != "npc" {
				t.Fatalf("expected kind npc, got %q", v.Kind)
			}
		}
	}
	if !found {
		t.Fatal("expected the agent in the snapshot")
	}
}
