package agent

import (
	"math"

	"github.com/jmercer/vale/internal/vec"
)

// stepToward advances the agent horizontally toward point at the given
// speed, never overshooting. A zero-length direction (target == self) is
// skipped for the tick rather than normalized.
func (a *Agent) stepToward(point vec.Vec3, speed, dt float64) {
	to := point.Sub(a.transform.Position).Flat()
	dist := to.Length()
	if dist == 0 {
		return
	}
	step := speed * dt
	if step > dist {
		step = dist
	}
	a.transform.Position = a.transform.Position.Add(to.Scale(step / dist))
}

// faceToward orients the agent at a world point, ignoring the vertical
// component.
func (a *Agent) faceToward(point vec.Vec3) {
	d := point.Sub(a.transform.Position)
	if d.X == 0 && d.Z == 0 {
		return
	}
	a.transform.Yaw = math.Atan2(d.X, d.Z)
}

// updateFollow keeps the agent a fixed distance behind its target. The
// follow point is offset back along the self→target direction, and the
// agent only walks while outside the tolerance band, so it settles instead
// of orbiting the target.
func (a *Agent) updateFollow(dt float64) {
	target, ok := a.registry.ByID(a.followTarget)
	if !ok {
		a.following = false
		a.followTarget = 0
		return
	}

	tpos := target.Transform().Position
	dist := a.transform.Position.Dist(tpos)
	if dist > a.followDistance+followTolerance {
		dir := tpos.Sub(a.transform.Position).Flat().Normalize()
		if !dir.IsZero() {
			point := tpos.Sub(dir.Scale(a.followDistance))
			a.stepToward(point, a.stats.WalkSpeed, dt)
			a.faceToward(tpos)
		}
	}

	// Correction runs even while settled so a follower crowded by its
	// target or bystanders still drifts clear.
	a.applyCollisionCorrection(1)
}

// updateMove integrates commanded movement and wandering. Entity targets
// are re-resolved to their live position every tick; a target that has
// disappeared clears movement state instead of erroring.
func (a *Agent) updateMove(dt float64) {
	if a.trackTarget != 0 {
		target, ok := a.registry.ByID(a.trackTarget)
		if !ok {
			a.clearMovement()
			return
		}
		a.moveTarget = target.Transform().Position
	}

	to := a.moveTarget.Sub(a.transform.Position).Flat()
	if to.Length() <= arriveEpsilon {
		a.clearMovement()
		return
	}

	speed := a.stats.WalkSpeed
	if a.running {
		speed = a.stats.RunSpeed
	}
	a.stepToward(a.moveTarget, speed, dt)
	a.applyCollisionCorrection(1)
	a.faceToward(a.transform.Position.Add(to))
}

// clearMovement returns the agent to idle.
func (a *Agent) clearMovement() {
	a.moving = false
	a.running = false
	a.wandering = false
	a.trackTarget = 0
	a.idleTime = 0
}
