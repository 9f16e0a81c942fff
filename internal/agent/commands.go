package agent

import (
	"fmt"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// The command surface. Every call is a no-op on a dead agent, and each
// command clears the competing intent flags so at most one of
// {inCombat, following, moving} drives position integration per tick.
// Issuing a new command mid-action unconditionally discards the previous
// intent.

// MoveTo commands movement toward a fixed world position.
func (a *Agent) MoveTo(pos vec.Vec3, running bool) {
	if a.dead {
		return
	}
	a.exitCombat()
	a.following = false
	a.followTarget = 0

	a.moveTarget = pos
	a.trackTarget = 0
	a.moving = true
	a.running = running
	a.wandering = false
}

// MoveToEntity commands movement toward an entity, tracking its live
// position every tick. If the target later disappears, movement state is
// cleared on the next tick.
func (a *Agent) MoveToEntity(target entity.ID, running bool) {
	if a.dead || target == a.id {
		return
	}
	a.exitCombat()
	a.following = false
	a.followTarget = 0

	a.trackTarget = target
	a.moving = true
	a.running = running
	a.wandering = false
}

// Stop clears all behavioral state flags unconditionally. Idempotent.
func (a *Agent) Stop() {
	if a.dead {
		return
	}
	a.clearMovement()
	a.following = false
	a.followTarget = 0
	a.exitCombat()
}

// Say opens a talking window for the given duration (seconds). A new call
// cancels and replaces any pending clear. Display and voice synthesis are
// external collaborators reading the Talking flag; nothing here blocks.
func (a *Agent) Say(message string, duration float64) {
	if a.dead {
		return
	}
	a.talkRemaining = duration
	a.emit("speech", fmt.Sprintf("%s says: %q", a.name, message))
}

// EngageCombat sets the combat state, overriding movement and following.
// The attack cooldown starts full, so the first swing lands one interval in.
func (a *Agent) EngageCombat(target entity.ID) {
	if a.dead || target == a.id || target == 0 {
		return
	}
	a.clearMovement()
	a.following = false
	a.followTarget = 0

	a.inCombat = true
	a.combatTarget = target
	a.attackCooldownRemaining = a.stats.AttackInterval
	a.circleSet = false
	if a.rng.Float64() < 0.5 {
		a.circleDir = -1
	} else {
		a.circleDir = 1
	}
}

// StartFollowing keeps the agent within distance of the target. A
// non-positive distance uses the default.
func (a *Agent) StartFollowing(target entity.ID, distance float64) {
	if a.dead || target == a.id || target == 0 {
		return
	}
	a.clearMovement()
	a.exitCombat()

	if distance <= 0 {
		distance = defaultFollowDistance
	}
	a.following = true
	a.followTarget = target
	a.followDistance = distance
}

// StopFollowing clears the following state.
func (a *Agent) StopFollowing() {
	if a.dead {
		return
	}
	a.following = false
	a.followTarget = 0
}

// TakeDamage applies damage through the health model, flags hit-stun,
// knocks the agent away from the attacker, and retaliates: an agent with no
// combat target — or one whose current target has more health left than the
// attacker — turns on whoever just hit it.
func (a *Agent) TakeDamage(amount float64, attacker entity.Entity) {
	if a.dead {
		return
	}
	a.health.Damage(amount)
	if a.dead {
		// Lethal: onLethal already collapsed all state.
		return
	}

	a.hitStunRemaining = hitStunDuration
	if attacker == nil {
		return
	}

	away := a.transform.Position.Sub(attacker.Transform().Position).Flat().Normalize()
	if away.IsZero() {
		away = vec.Vec3{X: 1}
	}
	a.knockback = away.Scale(a.stats.KnockbackForce)
	a.knockback.Y = a.stats.KnockbackForce * knockbackLift

	atk, ok := attacker.(entity.Damageable)
	if !ok || attacker.Kind() == entity.KindResource {
		return
	}
	if !a.inCombat || a.currentTargetHealthier(atk) {
		a.EngageCombat(attacker.ID())
	}
}

// currentTargetHealthier reports whether the current combat target has more
// health remaining than the candidate attacker. A missing target counts as
// healthier so the agent switches to the live threat.
func (a *Agent) currentTargetHealthier(attacker entity.Damageable) bool {
	current, ok := a.resolveDamageable(a.combatTarget)
	if !ok {
		return true
	}
	return current.Health().Current() > attacker.Health().Current()
}
