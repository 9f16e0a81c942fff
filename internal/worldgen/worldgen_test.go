package worldgen

import (
	"math"
	"testing"

	"github.com/jmercer/vale/internal/sim"
)

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	cfg := SmallConfig(42)
	a := Generate(cfg)
	b := Generate(cfg)

	if len(a.Resources) != len(b.Resources) {
		t.Fatalf("resource counts differ: %d vs %d", len(a.Resources), len(b.Resources))
	}
	for i := range a.Resources {
		if a.Resources[i] != b.Resources[i] {
			t.Fatalf("resource %d differs: %+v vs %+v", i, a.Resources[i], b.Resources[i])
		}
	}
	for i := range a.Spawns {
		if a.Spawns[i] != b.Spawns[i] {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, a.Spawns[i], b.Spawns[i])
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := Generate(SmallConfig(1))
	b := Generate(SmallConfig(2))

	if len(a.Resources) == 0 || len(b.Resources) == 0 {
		t.Skip("degenerate layouts, nothing to compare")
	}
	same := len(a.Resources) == len(b.Resources)
	if same {
		for i := range a.Resources {
			if a.Resources[i] != b.Resources[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different layouts")
	}
}

func TestSpawnClearingHasNoResources(t *testing.T) {
	cfg := SmallConfig(42)
	layout := Generate(cfg)

	for _, p := range layout.Resources {
		if d := math.Hypot(p.Position.X, p.Position.Z); d < cfg.SpawnRadius {
			t.Fatalf("resource inside the spawn clearing at distance %.2f", d)
		}
	}
}

func TestSpawnCountMatchesConfig(t *testing.T) {
	cfg := SmallConfig(42)
	cfg.NPCCount = 5
	layout := Generate(cfg)

	if len(layout.Spawns) != 5 {
		t.Fatalf("expected 5 spawns, got %d", len(layout.Spawns))
	}
	for _, sp := range layout.Spawns {
		if d := math.Hypot(sp.Position.X, sp.Position.Z); d > cfg.SpawnRadius {
			t.Fatalf("spawn outside the ring at distance %.2f", d)
		}
	}
}

func TestPopulateStagesLayoutAndPlayer(t *testing.T) {
	world := sim.New(42)
	cfg := SmallConfig(42)
	layout := Generate(cfg)

	Populate(world, cfg, layout, "Wanderer")
	world.Registry.Commit()

	want := len(layout.Resources) + len(layout.Spawns) + 1
	if world.Registry.Len() != want {
		t.Fatalf("expected %d entities, got %d", want, world.Registry.Len())
	}
}
