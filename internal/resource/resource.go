// Package resource implements harvestable static entities: trees, rocks,
// and bushes with a health pool, a deactivation on depletion, and an
// optional respawn schedule.
package resource

import (
	"fmt"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/health"
	"github.com/jmercer/vale/internal/vec"
)

// Kind is the closed set of resource archetypes.
type Kind uint8

const (
	KindTree Kind = iota
	KindRock
	KindBush
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRock:
		return "rock"
	case KindBush:
		return "bush"
	default:
		return "tree"
	}
}

// MaxHealthFor returns the harvest pool for a resource kind.
func MaxHealthFor(k Kind) float64 {
	switch k {
	case KindRock:
		return 80
	case KindBush:
		return 20
	default:
		return 50
	}
}

// Fade-out window before a non-respawning resource stages its own removal.
const removalFadeDuration = 10.0

// Config describes a new resource.
type Config struct {
	Registry     *entity.Registry
	Kind         Kind
	Position     vec.Vec3
	RespawnDelay float64 // seconds; 0 means the resource never comes back
	OnEvent      func(category, description string)
}

// Resource is a static world entity with a health pool. Depleting it
// deactivates it; with a respawn delay configured it heals to max and
// reactivates after the delay, otherwise it fades and stages its own
// removal.
type Resource struct {
	id        entity.ID
	kind      Kind
	transform entity.Transform
	health    *health.Health

	registry *entity.Registry
	onEvent  func(category, description string)

	inactive         bool
	respawnDelay     float64
	respawnRemaining float64
	fadeRemaining    float64
	removalRequested bool
}

// New creates a resource and issues its ID from the registry. The caller
// stages it.
func New(cfg Config) *Resource {
	r := &Resource{
		id:   cfg.Registry.NextID(),
		kind: cfg.Kind,
		transform: entity.Transform{
			Position: cfg.Position,
			Scale:    1,
		},
		health:       health.New(MaxHealthFor(cfg.Kind)),
		registry:     cfg.Registry,
		onEvent:      cfg.OnEvent,
		respawnDelay: cfg.RespawnDelay,
	}
	r.health.OnDeath(r.deactivate)
	return r
}

// ID implements entity.Entity.
func (r *Resource) ID() entity.ID { return r.id }

// Kind implements entity.Entity.
func (r *Resource) Kind() entity.Kind { return entity.KindResource }

// Name implements entity.Entity.
func (r *Resource) Name() string { return r.kind.String() }

// Transform implements entity.Entity.
func (r *Resource) Transform() *entity.Transform { return &r.transform }

// Health implements entity.Damageable.
func (r *Resource) Health() *health.Health { return r.health }

// Cleanup implements entity.Entity.
func (r *Resource) Cleanup() {}

// ResourceKind returns the archetype (tree, rock, bush).
func (r *Resource) ResourceKind() Kind { return r.kind }

// Active reports whether the resource can currently be harvested.
func (r *Resource) Active() bool { return !r.inactive }

// TakeDamage harvests the resource. Attribution is ignored; depleted
// resources shrug off further hits.
func (r *Resource) TakeDamage(amount float64, attacker entity.Entity) {
	if r.inactive {
		return
	}
	r.health.Damage(amount)
}

// Update advances the respawn or fade timer while the resource is inactive.
func (r *Resource) Update(dt float64) {
	if !r.inactive {
		return
	}

	if r.respawnDelay > 0 {
		r.respawnRemaining -= dt
		if r.respawnRemaining <= 0 {
			r.health.Reset()
			r.inactive = false
			r.emit("respawn", fmt.Sprintf("a %s has grown back", r.kind))
		}
		return
	}

	r.fadeRemaining -= dt
	if r.fadeRemaining <= 0 && !r.removalRequested {
		r.registry.Remove(r.id)
		r.removalRequested = true
	}
}

func (r *Resource) deactivate() {
	r.inactive = true
	r.respawnRemaining = r.respawnDelay
	r.fadeRemaining = removalFadeDuration
	r.emit("harvest", fmt.Sprintf("a %s was depleted", r.kind))
}

func (r *Resource) emit(category, description string) {
	if r.onEvent != nil {
		r.onEvent(category, description)
	}
}
