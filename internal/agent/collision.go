package agent

import (
	"math"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// applyCollisionCorrection pushes the agent away from every other living
// agent within 2× collisionRadius, proportional to the overlap. Each agent
// applies half the correction to itself during its own update and never
// writes to the other — the counterpart resolves its own half when its turn
// comes, so no cross-agent coordination is needed.
func (a *Agent) applyCollisionCorrection(scale float64) {
	minDist := 2 * collisionRadius

	for _, e := range a.registry.All() {
		if e.ID() == a.id || e.Kind() == entity.KindResource {
			continue
		}
		other, ok := e.(*Agent)
		if !ok || other.dead {
			continue
		}

		delta := a.transform.Position.Sub(other.transform.Position).Flat()
		distSq := delta.LengthSq()
		if distSq >= minDist*minDist {
			continue
		}

		dist := math.Sqrt(distSq)
		if dist == 0 {
			// Exactly stacked: treat as full overlap along an arbitrary
			// horizontal axis.
			a.transform.Position = a.transform.Position.Add(vec.Vec3{X: minDist * 0.5 * scale})
			continue
		}
		overlap := minDist - dist
		push := delta.Scale(1 / dist).Scale(overlap * 0.5 * scale)
		a.transform.Position = a.transform.Position.Add(push)
	}
}
