package agent

import (
	"math"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// Update advances the agent by dt seconds. States resolve in fixed priority
// order — Dead > Knockback > Combat > Following > Commanded-move/Wander >
// Idle — and a higher-priority state fully suppresses the lower ones for
// the tick. Hit-stun is a flag, not a state: it expires here but never
// blocks movement.
func (a *Agent) Update(dt float64) {
	if a.dead {
		a.updateDeath(dt)
		return
	}

	if a.attackCooldownRemaining > 0 {
		a.attackCooldownRemaining = max(0, a.attackCooldownRemaining-dt)
	}
	if a.attackWindowRemaining > 0 {
		a.attackWindowRemaining = max(0, a.attackWindowRemaining-dt)
	}
	if a.hitStunRemaining > 0 {
		a.hitStunRemaining = max(0, a.hitStunRemaining-dt)
	}
	if a.talkRemaining > 0 {
		a.talkRemaining = max(0, a.talkRemaining-dt)
	}

	if !a.knockback.IsZero() || a.transform.Position.Y > 0 {
		a.updateKnockback(dt)
		return
	}

	switch {
	case a.inCombat:
		a.updateCombat(dt)
	case a.following:
		a.updateFollow(dt)
	case a.moving:
		a.updateMove(dt)
	default:
		a.updateIdle(dt)
	}
}

// updateDeath runs the two-phase death animation: a fall-over, then a fade
// beginning at a fixed delay. Once the fade completes the agent stages its
// own removal; the registry applies it at the next commit.
func (a *Agent) updateDeath(dt float64) {
	a.deathElapsed += dt
	if a.removalRequested {
		return
	}
	if a.deathElapsed >= deathFadeDelay+deathFadeDuration {
		a.registry.Remove(a.id)
		a.removalRequested = true
	}
}

// updateKnockback integrates the knockback impulse under gravity. It
// pre-empts all other movement for the tick. Horizontal velocity is damped
// every tick while airborne; ground contact zeroes the whole impulse.
func (a *Agent) updateKnockback(dt float64) {
	a.knockback.Y -= gravity * dt
	a.transform.Position = a.transform.Position.Add(a.knockback.Scale(dt))

	if a.transform.Position.Y <= 0 {
		a.transform.Position.Y = 0
		a.knockback = vec.Vec3{}
		return
	}
	a.knockback.X *= knockbackFriction
	a.knockback.Z *= knockbackFriction
}

// updateIdle accumulates idle time; past a randomized interval the agent
// rolls a fixed chance to pick a wander target — a random point within
// wanderRadius of its position — and begins walking toward it. The player
// never wanders on its own. Idle agents still resolve overlaps: two agents
// standing inside each other's collision radius with no other forces must
// drift apart.
func (a *Agent) updateIdle(dt float64) {
	a.applyCollisionCorrection(1)
	if a.kind == entity.KindPlayer {
		return
	}
	a.idleTime += dt
	if a.idleTime < a.wanderDelay {
		return
	}
	a.idleTime = 0
	a.wanderDelay = wanderDelayMin + a.rng.Float64()*(wanderDelayMax-wanderDelayMin)

	if a.rng.Float64() >= wanderChance {
		return
	}

	// Uniform point on the disc: sqrt keeps the density even.
	angle := a.rng.Float64() * 2 * math.Pi
	dist := wanderRadius * math.Sqrt(a.rng.Float64())
	a.moveTarget = a.transform.Position.Add(vec.Vec3{
		X: math.Cos(angle) * dist,
		Z: math.Sin(angle) * dist,
	})
	a.trackTarget = 0
	a.moving = true
	a.running = false
	a.wandering = true
}
