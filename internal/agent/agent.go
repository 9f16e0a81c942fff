// Package agent implements the per-agent behavior core: a prioritized state
// machine resolving movement, combat, knockback physics, local collision
// avoidance, wandering, following, and the death lifecycle, plus the
// command surface external callers use to drive it.
package agent

import (
	"math/rand"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/health"
	"github.com/jmercer/vale/internal/vec"
)

// Hittable is implemented by entities that take attributed damage. Agents
// and resources both satisfy it; attacks are delivered through it so the
// victim's own damage reaction (knockback, retaliation) runs.
type Hittable interface {
	TakeDamage(amount float64, attacker entity.Entity)
}

// Config describes a new agent. Registry and RNG are required: every agent
// queries the world through its registry reference and draws wander
// decisions from the injected generator, so independent simulations stay
// reproducible per seed.
type Config struct {
	Registry   *entity.Registry
	RNG        *rand.Rand
	Kind       entity.Kind // KindPlayer or KindNPC
	Name       string
	Profession Profession
	Position   vec.Vec3
	Stats      *CombatStats // optional override of the profession defaults
	MaxHealth  float64      // optional override; 0 uses the profession default
	OnEvent    func(category, description string)
}

// Agent is a simulated character: the player or an NPC. All fields are
// owned by the agent and mutated only during its own Update or through the
// command surface; other agents' state is only ever read.
type Agent struct {
	id         entity.ID
	kind       entity.Kind
	name       string
	profession Profession
	transform  entity.Transform
	health     *health.Health
	stats      CombatStats

	registry *entity.Registry
	rng      *rand.Rand
	onEvent  func(category, description string)

	// Commanded movement / wandering.
	moving      bool
	running     bool
	wandering   bool
	moveTarget  vec.Vec3
	trackTarget entity.ID // re-resolved to a live position every tick when set

	// Following.
	following      bool
	followTarget   entity.ID
	followDistance float64

	// Combat.
	inCombat                bool
	combatTarget            entity.ID
	attackCooldownRemaining float64
	attackWindowRemaining   float64
	circleDir               float64
	circleAngle             float64
	circleSwitchRemaining   float64
	circleSet               bool

	// Damage reaction.
	knockback        vec.Vec3
	hitStunRemaining float64

	// Speech.
	talkRemaining float64

	// Wander pacing.
	idleTime    float64
	wanderDelay float64

	// Death lifecycle.
	dead             bool
	deathElapsed     float64
	removalRequested bool
}

// New creates an agent, issues its ID from the registry, and wires the
// lethal-damage transition. The caller stages it into the registry.
func New(cfg Config) *Agent {
	stats := StatsFor(cfg.Profession)
	maxHealth := MaxHealthFor(cfg.Profession)
	if cfg.Kind == entity.KindPlayer {
		stats = PlayerStats()
		maxHealth = PlayerMaxHealth
	}
	if cfg.Stats != nil {
		stats = *cfg.Stats
	}
	if cfg.MaxHealth > 0 {
		maxHealth = cfg.MaxHealth
	}

	a := &Agent{
		id:         cfg.Registry.NextID(),
		kind:       cfg.Kind,
		name:       cfg.Name,
		profession: cfg.Profession,
		transform: entity.Transform{
			Position: cfg.Position,
			Scale:    1,
		},
		health:    health.New(maxHealth),
		stats:     stats,
		registry:  cfg.Registry,
		rng:       cfg.RNG,
		onEvent:   cfg.OnEvent,
		circleDir: 1,
	}
	a.wanderDelay = wanderDelayMin + a.rng.Float64()*(wanderDelayMax-wanderDelayMin)
	a.health.OnDeath(a.onLethal)
	return a
}

// ID implements entity.Entity.
func (a *Agent) ID() entity.ID { return a.id }

// Kind implements entity.Entity.
func (a *Agent) Kind() entity.Kind { return a.kind }

// Name implements entity.Entity.
func (a *Agent) Name() string { return a.name }

// Transform implements entity.Entity.
func (a *Agent) Transform() *entity.Transform { return &a.transform }

// Health implements entity.Damageable.
func (a *Agent) Health() *health.Health { return a.health }

// Cleanup implements entity.Entity. The agent owns no external resources;
// rendering collaborators observe removal through the registry.
func (a *Agent) Cleanup() {}

// Profession returns the agent's trade.
func (a *Agent) Profession() Profession { return a.profession }

// Stats returns the agent's immutable combat configuration.
func (a *Agent) Stats() CombatStats { return a.stats }

// Dead reports whether the agent has taken lethal damage.
func (a *Agent) Dead() bool { return a.dead }

// Moving reports whether commanded movement or wandering drives the agent.
func (a *Agent) Moving() bool { return a.moving }

// Wandering reports whether the current movement is a self-chosen wander.
func (a *Agent) Wandering() bool { return a.wandering }

// Following reports whether the agent is following a target.
func (a *Agent) Following() bool { return a.following }

// InCombat reports whether the agent has an active combat target.
func (a *Agent) InCombat() bool { return a.inCombat }

// CombatTarget returns the current combat target ID (0 when none).
func (a *Agent) CombatTarget() entity.ID {
	if !a.inCombat {
		return 0
	}
	return a.combatTarget
}

// Talking reports whether a speech window is open.
func (a *Agent) Talking() bool { return a.talkRemaining > 0 }

// Attacking reports whether an attack animation window is open.
func (a *Agent) Attacking() bool { return a.attackWindowRemaining > 0 }

// HitStunned reports whether the agent was damaged recently. A visual flag
// only; it never blocks movement.
func (a *Agent) HitStunned() bool { return a.hitStunRemaining > 0 }

// FallProgress returns the fall-over animation progress in [0, 1] once the
// agent is dead.
func (a *Agent) FallProgress() float64 {
	if !a.dead {
		return 0
	}
	return min(1, a.deathElapsed/deathFallDuration)
}

// FadeProgress returns the fade-out progress in [0, 1] once the post-death
// fade has begun.
func (a *Agent) FadeProgress() float64 {
	if !a.dead || a.deathElapsed < deathFadeDelay {
		return 0
	}
	return min(1, (a.deathElapsed-deathFadeDelay)/deathFadeDuration)
}

func (a *Agent) emit(category, description string) {
	if a.onEvent != nil {
		a.onEvent(category, description)
	}
}

// onLethal runs on the health component's >0 → 0 transition. Dead suppresses
// every other behavioral state in the same tick.
func (a *Agent) onLethal() {
	a.dead = true
	a.deathElapsed = 0
	a.moving = false
	a.running = false
	a.wandering = false
	a.trackTarget = 0
	a.following = false
	a.followTarget = 0
	a.inCombat = false
	a.combatTarget = 0
	a.knockback = vec.Vec3{}
	// Killed mid-air: drop straight to the ground so the fall animation
	// plays on the plane instead of floating.
	a.transform.Position.Y = 0
	a.talkRemaining = 0
	a.emit("death", a.name+" has died")
}
