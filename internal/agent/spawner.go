// NPC spawning — creates the villager population with names, professions,
// and profession-derived combat stats.
package agent

import (
	"math/rand"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// Spawner creates agents for the simulation. Name selection draws from its
// own seeded generator so populations are reproducible per seed.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed + 300))}
}

// SpawnNPC creates (but does not stage) one NPC at the given position.
func (s *Spawner) SpawnNPC(reg *entity.Registry, rng *rand.Rand, pos vec.Vec3, prof Profession, onEvent func(category, description string)) *Agent {
	return New(Config{
		Registry:   reg,
		RNG:        rng,
		Kind:       entity.KindNPC,
		Name:       s.generateName(),
		Profession: prof,
		Position:   pos,
		OnEvent:    onEvent,
	})
}

// SpawnPlayer creates (but does not stage) the player-controlled agent.
func (s *Spawner) SpawnPlayer(reg *entity.Registry, rng *rand.Rand, name string, pos vec.Vec3, onEvent func(category, description string)) *Agent {
	return New(Config{
		Registry: reg,
		RNG:      rng,
		Kind:     entity.KindPlayer,
		Name:     name,
		Position: pos,
		OnEvent:  onEvent,
	})
}

// RandomProfession picks a profession, weighted toward common trades.
func (s *Spawner) RandomProfession() Profession {
	r := s.rng.Float32()
	switch {
	case r < 0.30:
		return ProfessionVillager
	case r < 0.55:
		return ProfessionFarmer
	case r < 0.70:
		return ProfessionGuard
	case r < 0.82:
		return ProfessionLumberjack
	case r < 0.93:
		return ProfessionMiner
	default:
		return ProfessionHerbalist
	}
}

func (s *Spawner) generateName() string {
	first := firstNames[s.rng.Intn(len(firstNames))]
	last := lastNames[s.rng.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var firstNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Jasper", "Kael", "Leif", "Magnus", "Nils", "Oswin",
	"Rowan", "Theron", "Ulric", "Wren", "Yorick",
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Iris", "Kira", "Lena", "Mira", "Petra", "Runa", "Senna", "Thea",
	"Una", "Vera", "Willa", "Yara",
}

var lastNames = []string{
	"Voss", "Thornwood", "Blackwood", "Ashford", "Ironhand", "Dunmore",
	"Greenvale", "Frostborn", "Hearthstone", "Millward", "Copperfield",
	"Silverdale", "Stoneheart", "Deepwell", "Brightwater", "Oakenshield",
	"Redforge", "Windholm", "Marshwood", "Riverstone", "Embercroft",
	"Holloway", "Dawnridge", "Farrow", "Thatcher", "Briar", "Caldwell",
	"Harper", "Mercer", "Ward",
}
