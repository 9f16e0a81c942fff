package agent

import (
	"fmt"
	"math"

	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// updateCombat drives one tick of fighting: chase when far, circle when
// close, and swing whenever the target is in range and the cooldown has
// elapsed. Combat ends when the target dies, disappears, or moves past the
// disengage distance — which is deliberately much larger than attack range
// so the state does not flicker at the engage boundary.
func (a *Agent) updateCombat(dt float64) {
	target, ok := a.resolveDamageable(a.combatTarget)
	if !ok || target.Health().Dead() {
		a.exitCombat()
		return
	}

	tpos := target.Transform().Position
	dist := a.transform.Position.Dist(tpos)
	if dist > disengageDistance {
		a.exitCombat()
		return
	}

	if dist > a.stats.AttackRange*combatApproachFactor {
		a.stepToward(tpos, a.stats.RunSpeed, dt)
	} else {
		a.circleTarget(tpos, dt)
	}

	// Reduced correction keeps combatants from overlapping while still
	// letting them press the attack.
	a.applyCollisionCorrection(combatCorrectionScale)
	a.faceToward(tpos)

	if dist <= a.stats.AttackRange {
		a.tryAttack(target)
	}
}

// circleTarget strafes around the target at 0.8× attack range, alternating
// direction on a fixed cadence.
func (a *Agent) circleTarget(tpos vec.Vec3, dt float64) {
	if !a.circleSet {
		// Start the orbit from where the agent already stands.
		a.circleAngle = math.Atan2(a.transform.Position.Z-tpos.Z, a.transform.Position.X-tpos.X)
		a.circleSwitchRemaining = circleSwitchInterval
		a.circleSet = true
	}

	a.circleSwitchRemaining -= dt
	if a.circleSwitchRemaining <= 0 {
		a.circleDir = -a.circleDir
		a.circleSwitchRemaining = circleSwitchInterval
	}
	a.circleAngle += a.circleDir * circleAngularSpeed * dt

	radius := a.stats.AttackRange * combatCircleFactor
	point := vec.Vec3{
		X: tpos.X + math.Cos(a.circleAngle)*radius,
		Z: tpos.Z + math.Sin(a.circleAngle)*radius,
	}
	a.stepToward(point, a.stats.WalkSpeed, dt)
}

// tryAttack swings at the target. Rejected silently while the cooldown is
// running. The cooldown starts full on engage, so the first swing lands one
// full interval after combat begins.
func (a *Agent) tryAttack(target entity.Damageable) {
	if a.attackCooldownRemaining > 0 {
		return
	}
	a.attackCooldownRemaining = a.stats.AttackInterval
	a.attackWindowRemaining = attackWindowDuration

	if hittable, ok := target.(Hittable); ok {
		hittable.TakeDamage(a.stats.Damage, a)
	} else {
		target.Health().Damage(a.stats.Damage)
	}
	a.emit("combat", fmt.Sprintf("%s strikes %s", a.name, target.Name()))
}

func (a *Agent) exitCombat() {
	a.inCombat = false
	a.combatTarget = 0
	a.circleSet = false
	a.idleTime = 0
}

// resolveDamageable looks up a live entity with health by ID.
func (a *Agent) resolveDamageable(id entity.ID) (entity.Damageable, bool) {
	e, ok := a.registry.ByID(id)
	if !ok {
		return nil, false
	}
	d, ok := e.(entity.Damageable)
	return d, ok
}
