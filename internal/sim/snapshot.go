package sim

import (
	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/resource"
	"github.com/jmercer/vale/internal/vec"
)

// EntityView is the read-only slice of an entity's state that renderers and
// the mind service consume. Writes go through the command surface only.
type EntityView struct {
	ID         entity.ID `json:"id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	Profession string    `json:"profession,omitempty"`
	Position   vec.Vec3  `json:"position"`
	Yaw        float64   `json:"yaw"`
	Health     float64   `json:"health"` // fraction in [0, 1]
	Dead       bool      `json:"dead,omitempty"`
	Talking    bool      `json:"talking,omitempty"`
	Attacking  bool      `json:"attacking,omitempty"`
	HitStunned bool      `json:"hit_stunned,omitempty"`
	Inactive   bool      `json:"inactive,omitempty"` // depleted resources
	Fade       float64   `json:"fade,omitempty"`     // death fade progress
}

// Snapshot is one frame of observable world state.
type Snapshot struct {
	Tick     uint64       `json:"tick"`
	SimTime  float64      `json:"sim_time"`
	Entities []EntityView `json:"entities"`
	Events   []Event      `json:"events,omitempty"` // recent tail
}

// Snapshot builds the current frame. Called from the simulation goroutine
// after Update; the result is immutable and safe to share.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.tick,
		SimTime:  s.simTime,
		Entities: make([]EntityView, 0, s.Registry.Len()),
		Events:   s.RecentEvents(20),
	}
	for _, e := range s.Registry.All() {
		snap.Entities = append(snap.Entities, viewOf(e))
	}
	return snap
}

func viewOf(e entity.Entity) EntityView {
	v := EntityView{
		ID:       e.ID(),
		Kind:     e.Kind().String(),
		Name:     e.Name(),
		Position: e.Transform().Position,
		Yaw:      e.Transform().Yaw,
	}
	switch t := e.(type) {
	case *agent.Agent:
		v.Profession = t.Profession().String()
		v.Health = t.Health().Fraction()
		v.Dead = t.Dead()
		v.Talking = t.Talking()
		v.Attacking = t.Attacking()
		v.HitStunned = t.HitStunned()
		v.Fade = t.FadeProgress()
	case *resource.Resource:
		v.Health = t.Health().Fraction()
		v.Inactive = !t.Active()
	}
	return v
}
