// Package health implements the clamped health component shared by agents
// and harvestable resources.
package health

// Health is a clamped health value with damage/heal operations and death
// notification. The invariant 0 ≤ Current ≤ Max holds at all times.
type Health struct {
	max     float64
	current float64
	onDeath []func()
}

// New creates a health component at full health.
func New(max float64) *Health {
	return &Health{max: max, current: max}
}

// Max returns the maximum health value.
func (h *Health) Max() float64 { return h.max }

// Current returns the current health value.
func (h *Health) Current() float64 { return h.current }

// Fraction returns current/max, in [0, 1].
func (h *Health) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return h.current / h.max
}

// Dead reports whether health has reached the floor.
func (h *Health) Dead() bool { return h.current <= 0 }

// OnDeath registers a callback fired when health transitions from >0 to 0.
// Registering the same callback twice fires it twice; callers avoid
// duplicate registration.
func (h *Health) OnDeath(fn func()) {
	h.onDeath = append(h.onDeath, fn)
}

// Damage lowers health by amount, flooring at 0. The death callbacks fire
// exactly once, on the transition to 0; damaging an already-dead component
// is a no-op.
func (h *Health) Damage(amount float64) {
	if amount <= 0 || h.current <= 0 {
		return
	}
	h.current -= amount
	if h.current <= 0 {
		h.current = 0
		for _, fn := range h.onDeath {
			fn()
		}
	}
}

// Heal raises health by amount, ceiling at Max. No callback fires on heal.
func (h *Health) Heal(amount float64) {
	if amount <= 0 {
		return
	}
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
}

// Reset restores full health. A later lethal hit fires the death callbacks
// again; used by resource respawn.
func (h *Health) Reset() {
	h.current = h.max
}
