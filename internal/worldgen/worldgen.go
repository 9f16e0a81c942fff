// Package worldgen scatters the initial world: resources placed by noise
// density fields and agents spawned in a ring around the origin. Generation
// is deterministic per seed.
package worldgen

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/resource"
	"github.com/jmercer/vale/internal/vec"
)

// Config controls the size and density of the generated world.
type Config struct {
	Seed         int64
	Extent       float64 // half-width of the square placement area
	CellSize     float64 // sampling grid pitch
	TreeDensity  float64 // density threshold in [0, 1]; lower = more trees
	RockDensity  float64
	BushDensity  float64
	NPCCount     int
	SpawnRadius  float64 // ring radius for agent spawns
	RespawnDelay float64 // resource respawn delay in seconds
}

// DefaultConfig returns the standard world.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:         seed,
		Extent:       60,
		CellSize:     4,
		TreeDensity:  0.72,
		RockDensity:  0.80,
		BushDensity:  0.78,
		NPCCount:     8,
		SpawnRadius:  12,
		RespawnDelay: 60,
	}
}

// SmallConfig returns a tiny world for tests.
func SmallConfig(seed int64) Config {
	return Config{
		Seed:         seed,
		Extent:       20,
		CellSize:     4,
		TreeDensity:  0.6,
		RockDensity:  0.7,
		BushDensity:  0.65,
		NPCCount:     3,
		SpawnRadius:  6,
		RespawnDelay: 10,
	}
}

// Placement is one resource to create.
type Placement struct {
	Kind     resource.Kind
	Position vec.Vec3
}

// SpawnPoint is one agent to create.
type SpawnPoint struct {
	Profession agent.Profession
	Position   vec.Vec3
}

// Layout is the generated world plan.
type Layout struct {
	Resources []Placement
	Spawns    []SpawnPoint
}

// Generate builds the world plan. Three independent noise layers drive the
// resource kinds; each grid cell whose layer exceeds its density threshold
// gets one placement, jittered within the cell so rows do not show.
func Generate(cfg Config) Layout {
	treeNoise := opensimplex.NewNormalized(cfg.Seed)
	rockNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	bushNoise := opensimplex.NewNormalized(cfg.Seed + 2)
	rng := rand.New(rand.NewSource(cfg.Seed + 3))

	var layout Layout

	for x := -cfg.Extent; x <= cfg.Extent; x += cfg.CellSize {
		for z := -cfg.Extent; z <= cfg.Extent; z += cfg.CellSize {
			// Keep a clearing around the origin for spawns.
			if math.Hypot(x, z) < cfg.SpawnRadius+2 {
				continue
			}

			jx := x + (rng.Float64()-0.5)*cfg.CellSize
			jz := z + (rng.Float64()-0.5)*cfg.CellSize
			pos := vec.Vec3{X: jx, Z: jz}

			switch {
			case octaveNoise(treeNoise, x, z, 3, 0.05, 0.5) > cfg.TreeDensity:
				layout.Resources = append(layout.Resources, Placement{resource.KindTree, pos})
			case octaveNoise(rockNoise, x, z, 3, 0.04, 0.5) > cfg.RockDensity:
				layout.Resources = append(layout.Resources, Placement{resource.KindRock, pos})
			case octaveNoise(bushNoise, x, z, 3, 0.06, 0.5) > cfg.BushDensity:
				layout.Resources = append(layout.Resources, Placement{resource.KindBush, pos})
			}
		}
	}

	for i := 0; i < cfg.NPCCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.NPCCount)
		r := cfg.SpawnRadius * (0.6 + 0.4*rng.Float64())
		layout.Spawns = append(layout.Spawns, SpawnPoint{
			Profession: weightedProfession(rng),
			Position: vec.Vec3{
				X: math.Cos(angle) * r,
				Z: math.Sin(angle) * r,
			},
		})
	}

	return layout
}

// weightedProfession skews spawns toward villagers with a guard or two.
func weightedProfession(rng *rand.Rand) agent.Profession {
	roll := rng.Float64()
	switch {
	case roll < 0.30:
		return agent.ProfessionVillager
	case roll < 0.45:
		return agent.ProfessionFarmer
	case roll < 0.60:
		return agent.ProfessionGuard
	case roll < 0.75:
		return agent.ProfessionLumberjack
	case roll < 0.88:
		return agent.ProfessionMiner
	default:
		return agent.ProfessionHerbalist
	}
}

// octaveNoise layers multiple noise frequencies for natural clustering.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
