package entity

// Registry holds the committed set of live entities and stages additions
// and removals until the next Commit. The whole simulation is
// single-threaded, so deferring mutations to a fixed point between update
// passes is all that is needed to keep iteration safe: an entity added
// mid-tick is invisible to queries until the next tick's commit, and an
// entity removed mid-tick stays visible and updatable for the rest of the
// current tick.
type Registry struct {
	nextID   ID
	entities []Entity // committed, stable update order
	byID     map[ID]Entity

	pendingAdd    []Entity
	pendingRemove map[ID]struct{}
}

// NewRegistry creates an empty registry. IDs start at 1; 0 is never issued
// and doubles as "no entity" in behavioral state.
func NewRegistry() *Registry {
	return &Registry{
		byID:          make(map[ID]Entity),
		pendingRemove: make(map[ID]struct{}),
	}
}

// NextID issues the next monotonic entity identifier.
func (r *Registry) NextID() ID {
	r.nextID++
	return r.nextID
}

// Add stages an entity for insertion at the next Commit.
func (r *Registry) Add(e Entity) {
	r.pendingAdd = append(r.pendingAdd, e)
}

// Remove stages an entity for removal at the next Commit. Staging the same
// ID twice is harmless.
func (r *Registry) Remove(id ID) {
	r.pendingRemove[id] = struct{}{}
}

// Commit applies all staged additions, then all staged removals, calling
// Cleanup on each removed entity. Invoked once per tick before per-entity
// updates.
func (r *Registry) Commit() {
	for _, e := range r.pendingAdd {
		r.entities = append(r.entities, e)
		r.byID[e.ID()] = e
	}
	r.pendingAdd = r.pendingAdd[:0]

	if len(r.pendingRemove) == 0 {
		return
	}
	kept := r.entities[:0]
	for _, e := range r.entities {
		if _, gone := r.pendingRemove[e.ID()]; gone {
			delete(r.byID, e.ID())
			e.Cleanup()
			continue
		}
		kept = append(kept, e)
	}
	r.entities = kept
	clear(r.pendingRemove)
}

// ByID returns the committed entity with the given ID, if any.
func (r *Registry) ByID(id ID) (Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All returns the committed entities in update order. Callers must not
// mutate the returned slice.
func (r *Registry) All() []Entity {
	return r.entities
}

// Len returns the number of committed entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Update commits staged mutations and then updates every live entity in a
// stable order. Entities may stage further additions/removals during their
// own update; those take effect at the next Commit.
func (r *Registry) Update(dt float64) {
	r.Commit()
	for _, e := range r.entities {
		e.Update(dt)
	}
}
