package agent

// Behavior tuning. All durations are in seconds of simulation time and are
// counted down by deltaTime, never by wall-clock timers, so the whole state
// machine pauses with the simulation clock.
const (
	gravity           = 9.8
	knockbackFriction = 0.82 // horizontal damping per tick while airborne
	knockbackLift     = 0.6  // upward fraction of KnockbackForce on a hit

	hitStunDuration      = 0.3
	attackWindowDuration = 0.4 // animation window opened by a landed attack

	// Combat positioning. Approach at run speed beyond 1.2× attack range,
	// otherwise circle at 0.8× attack range, flipping direction on a fixed
	// cadence. Disengage well beyond attack range so combat does not
	// flicker at the engage boundary.
	combatApproachFactor  = 1.2
	combatCircleFactor    = 0.8
	circleSwitchInterval  = 2.0
	circleAngularSpeed    = 1.4 // radians per second
	combatCorrectionScale = 0.3
	disengageDistance     = 15.0

	followTolerance       = 0.5
	defaultFollowDistance = 3.0

	arriveEpsilon  = 0.15
	wanderRadius   = 8.0
	wanderChance   = 0.35
	wanderDelayMin = 2.0
	wanderDelayMax = 6.0

	collisionRadius = 0.5

	deathFallDuration = 1.0
	deathFadeDelay    = 2.0
	deathFadeDuration = 1.5
)
