package worldgen

import (
	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/resource"
	"github.com/jmercer/vale/internal/sim"
	"github.com/jmercer/vale/internal/vec"
)

// Populate stages the generated layout plus one player agent into the
// simulation. Nothing is live until the registry commits.
func Populate(world *sim.Simulation, cfg Config, layout Layout, playerName string) {
	for _, p := range layout.Resources {
		world.Registry.Add(resource.New(resource.Config{
			Registry:     world.Registry,
			Kind:         p.Kind,
			Position:     p.Position,
			RespawnDelay: cfg.RespawnDelay,
			OnEvent:      world.Emit,
		}))
	}

	spawner := agent.NewSpawner(cfg.Seed)
	for _, sp := range layout.Spawns {
		world.Registry.Add(spawner.SpawnNPC(world.Registry, world.RNG, sp.Position, sp.Profession, world.Emit))
	}

	if playerName != "" {
		world.Registry.Add(spawner.SpawnPlayer(world.Registry, world.RNG, playerName, vec.Vec3{}, world.Emit))
	}
}
