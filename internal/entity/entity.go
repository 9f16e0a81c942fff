// Package entity owns the canonical set of live simulation entities: the
// deferred-mutation registry that assigns identifiers and applies
// additions/removals at safe points, and the distance-sorted spatial
// queries built on top of it.
package entity

import (
	"github.com/jmercer/vale/internal/health"
	"github.com/jmercer/vale/internal/vec"
)

// ID is a unique entity identifier. IDs are monotonic and never reused.
type ID uint64

// Kind is the closed set of entity archetypes in the world.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNPC
	KindResource
)

// String returns the lowercase kind name used in snapshots and logs.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Transform is the spatial state shared by every entity.
type Transform struct {
	Position vec.Vec3
	Yaw      float64 // radians around the y axis
	Scale    float64
}

// Entity is the minimal contract the registry manages. Implementations own
// all of their mutable state and mutate only themselves during Update.
type Entity interface {
	ID() ID
	Kind() Kind
	Name() string
	Transform() *Transform
	Update(dt float64)
	Cleanup()
}

// Damageable is implemented by entities that carry a health component.
type Damageable interface {
	Entity
	Health() *health.Health
}
