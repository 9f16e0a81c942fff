package mind

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

const (
	// A step that never completes on its own is abandoned after this long.
	stepTimeout = 20.0
	// How long a follow step holds before the script advances. Following
	// itself continues until something else overrides it.
	followHold = 6.0

	defaultSpeakDuration = 3.0
)

// Script replays interpreted steps against one agent, one step at a time.
// It satisfies the simulation's tick hook contract: Tick runs inside the
// simulation goroutine (the only place the registry is touched) and returns
// false once the script is finished.
type Script struct {
	Batch string // correlates log lines across a request

	reg     *entity.Registry
	actorID entity.ID
	steps   []Step

	idx     int
	started bool
	elapsed float64
}

// NewScript wraps steps for replay against the agent with the given ID. The
// registry is only read from inside Tick.
func NewScript(reg *entity.Registry, actorID entity.ID, steps []Step) *Script {
	return &Script{
		Batch:   uuid.NewString(),
		reg:     reg,
		actorID: actorID,
		steps:   steps,
	}
}

// Tick advances the script. Returns false when all steps have run or the
// actor is gone.
func (sc *Script) Tick(dt float64) bool {
	if sc.idx >= len(sc.steps) {
		return false
	}
	actor, ok := sc.actor()
	if !ok || actor.Dead() {
		slog.Debug("script abandoned", "batch", sc.Batch, "step", sc.idx)
		return false
	}

	step := sc.steps[sc.idx]
	if !sc.started {
		sc.begin(actor, step)
		sc.started = true
		sc.elapsed = 0
		return true
	}

	sc.elapsed += dt
	if sc.done(actor, step) || sc.elapsed >= stepTimeout {
		sc.idx++
		sc.started = false
	}
	return sc.idx < len(sc.steps)
}

func (sc *Script) actor() (*agent.Agent, bool) {
	e, ok := sc.reg.ByID(sc.actorID)
	if !ok {
		return nil, false
	}
	a, ok := e.(*agent.Agent)
	return a, ok
}

// begin issues the command for one step.
func (sc *Script) begin(actor *agent.Agent, step Step) {
	slog.Debug("script step", "batch", sc.Batch, "step", sc.idx, "action", step.Action)
	switch step.Action {
	case "move":
		if step.Target != "" {
			if e, ok := sc.findByName(step.Target); ok {
				actor.MoveToEntity(e.ID(), step.Running)
			}
			return
		}
		actor.MoveTo(vec.Vec3{X: step.X, Z: step.Z}, step.Running)
	case "speak":
		d := step.Duration
		if d <= 0 {
			d = defaultSpeakDuration
		}
		actor.Say(step.Message, d)
	case "attack":
		if e, ok := sc.findByName(step.Target); ok {
			actor.EngageCombat(e.ID())
		}
	case "follow":
		if e, ok := sc.findByName(step.Target); ok {
			actor.StartFollowing(e.ID(), 0)
		}
	case "stop":
		actor.Stop()
	}
}

// done reports whether the current step has run its course.
func (sc *Script) done(actor *agent.Agent, step Step) bool {
	switch step.Action {
	case "move":
		return !actor.Moving()
	case "speak":
		return !actor.Talking()
	case "attack":
		return !actor.InCombat()
	case "follow":
		return !actor.Following() || sc.elapsed >= followHold
	default:
		return true
	}
}

// findByName resolves an entity by case-insensitive name match.
func (sc *Script) findByName(name string) (entity.Entity, bool) {
	for _, e := range sc.reg.All() {
		if strings.EqualFold(e.Name(), name) {
			return e, true
		}
	}
	return nil, false
}
