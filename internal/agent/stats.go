package agent

// CombatStats is the immutable per-archetype configuration an agent is
// created with. Never mutated at runtime.
type CombatStats struct {
	Damage         float64
	AttackRange    float64
	AttackInterval float64 // seconds between landed attacks
	KnockbackForce float64
	WalkSpeed      float64
	RunSpeed       float64
}

// Profession is an NPC's trade. It drives combat stats, spawn placement,
// and how the mind service describes the agent.
type Profession uint8

const (
	ProfessionVillager Profession = iota
	ProfessionFarmer
	ProfessionGuard
	ProfessionLumberjack
	ProfessionMiner
	ProfessionHerbalist
)

// String returns the lowercase profession name.
func (p Profession) String() string {
	switch p {
	case ProfessionFarmer:
		return "farmer"
	case ProfessionGuard:
		return "guard"
	case ProfessionLumberjack:
		return "lumberjack"
	case ProfessionMiner:
		return "miner"
	case ProfessionHerbalist:
		return "herbalist"
	default:
		return "villager"
	}
}

// Professions lists every NPC profession, in spawn-weight order.
var Professions = []Profession{
	ProfessionVillager,
	ProfessionFarmer,
	ProfessionGuard,
	ProfessionLumberjack,
	ProfessionMiner,
	ProfessionHerbalist,
}

// StatsFor returns the combat configuration for a profession.
func StatsFor(p Profession) CombatStats {
	switch p {
	case ProfessionGuard:
		return CombatStats{
			Damage:         12,
			AttackRange:    2.2,
			AttackInterval: 1.2,
			KnockbackForce: 5.0,
			WalkSpeed:      2.2,
			RunSpeed:       5.5,
		}
	case ProfessionLumberjack:
		return CombatStats{
			Damage:         9,
			AttackRange:    2.0,
			AttackInterval: 1.6,
			KnockbackForce: 4.0,
			WalkSpeed:      1.9,
			RunSpeed:       4.5,
		}
	case ProfessionMiner:
		return CombatStats{
			Damage:         8,
			AttackRange:    1.8,
			AttackInterval: 1.6,
			KnockbackForce: 4.0,
			WalkSpeed:      1.8,
			RunSpeed:       4.2,
		}
	default:
		return CombatStats{
			Damage:         5,
			AttackRange:    1.8,
			AttackInterval: 1.5,
			KnockbackForce: 3.0,
			WalkSpeed:      1.8,
			RunSpeed:       4.0,
		}
	}
}

// MaxHealthFor returns the starting health for a profession.
func MaxHealthFor(p Profession) float64 {
	switch p {
	case ProfessionGuard:
		return 140
	case ProfessionLumberjack, ProfessionMiner:
		return 110
	default:
		return 100
	}
}

// PlayerStats is the configuration for the player-controlled agent.
func PlayerStats() CombatStats {
	return CombatStats{
		Damage:         15,
		AttackRange:    2.5,
		AttackInterval: 1.0,
		KnockbackForce: 6.0,
		WalkSpeed:      2.5,
		RunSpeed:       6.0,
	}
}

// PlayerMaxHealth is the player's starting health.
const PlayerMaxHealth = 200.0
