package entity

import (
	"math"
	"sort"
)

// Hit pairs an entity with its Euclidean distance from the requester.
type Hit struct {
	Entity   Entity
	Distance float64
}

// ByDistance returns the committed entities matching pred, ascending by
// Euclidean distance from the requesting entity, which is always excluded.
// Filtering and ordering use squared distances; the square root is taken
// once per reported hit. Returns an empty slice when nothing matches —
// callers must handle the empty case explicitly.
func ByDistance(r *Registry, from Entity, pred func(Entity) bool) []Hit {
	origin := from.Transform().Position

	type candidate struct {
		e      Entity
		distSq float64
	}
	var found []candidate
	for _, e := range r.All() {
		if e.ID() == from.ID() {
			continue
		}
		if pred != nil && !pred(e) {
			continue
		}
		found = append(found, candidate{e, origin.DistSq(e.Transform().Position)})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].distSq < found[j].distSq
	})

	hits := make([]Hit, len(found))
	for i, c := range found {
		hits[i] = Hit{Entity: c.e, Distance: math.Sqrt(c.distSq)}
	}
	return hits
}

// Nearest returns the closest entity matching pred, or ok=false when no
// entity matches.
func Nearest(r *Registry, from Entity, pred func(Entity) bool) (Hit, bool) {
	origin := from.Transform().Position

	var best Entity
	bestSq := math.MaxFloat64
	for _, e := range r.All() {
		if e.ID() == from.ID() {
			continue
		}
		if pred != nil && !pred(e) {
			continue
		}
		if d := origin.DistSq(e.Transform().Position); d < bestSq {
			bestSq = d
			best = e
		}
	}
	if best == nil {
		return Hit{}, false
	}
	return Hit{Entity: best, Distance: math.Sqrt(bestSq)}, true
}
