package sim

import (
	"fmt"

	"github.com/jmercer/vale/internal/agent"
	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/vec"
)

// CommandKind enumerates the typed commands external drivers may issue.
type CommandKind uint8

const (
	CommandMoveTo CommandKind = iota
	CommandMoveToEntity
	CommandStop
	CommandSay
	CommandAttack
	CommandFollow
	CommandStopFollow
	CommandDamage
)

// String returns the lowercase command name used in the API and logs.
func (k CommandKind) String() string {
	switch k {
	case CommandMoveTo:
		return "move"
	case CommandMoveToEntity:
		return "move_to_entity"
	case CommandStop:
		return "stop"
	case CommandSay:
		return "say"
	case CommandAttack:
		return "attack"
	case CommandFollow:
		return "follow"
	case CommandStopFollow:
		return "stop_follow"
	case CommandDamage:
		return "damage"
	default:
		return "unknown"
	}
}

// Command is one staged mutation of an agent's intent. Fields beyond
// AgentID and Kind are read per kind.
type Command struct {
	AgentID  entity.ID
	Kind     CommandKind
	Position vec.Vec3
	TargetID entity.ID
	Running  bool
	Message  string
	Duration float64
	Distance float64
	Amount   float64
}

// apply resolves the command against a live agent. Commands referencing
// missing or non-agent entities are rejected here, before reaching the
// state machine; the returned error is logged at debug and otherwise
// dropped — an individual bad command never halts the simulation.
func (s *Simulation) apply(cmd Command) error {
	e, ok := s.Registry.ByID(cmd.AgentID)
	if !ok {
		return fmt.Errorf("agent %d not found", cmd.AgentID)
	}
	a, ok := e.(*agent.Agent)
	if !ok {
		return fmt.Errorf("entity %d is not an agent", cmd.AgentID)
	}

	switch cmd.Kind {
	case CommandMoveTo:
		a.MoveTo(cmd.Position, cmd.Running)
	case CommandMoveToEntity:
		if _, ok := s.Registry.ByID(cmd.TargetID); !ok {
			return fmt.Errorf("move target %d not found", cmd.TargetID)
		}
		a.MoveToEntity(cmd.TargetID, cmd.Running)
	case CommandStop:
		a.Stop()
	case CommandSay:
		a.Say(cmd.Message, cmd.Duration)
	case CommandAttack:
		if _, ok := s.Registry.ByID(cmd.TargetID); !ok {
			return fmt.Errorf("attack target %d not found", cmd.TargetID)
		}
		a.EngageCombat(cmd.TargetID)
	case CommandFollow:
		if _, ok := s.Registry.ByID(cmd.TargetID); !ok {
			return fmt.Errorf("follow target %d not found", cmd.TargetID)
		}
		a.StartFollowing(cmd.TargetID, cmd.Distance)
	case CommandStopFollow:
		a.StopFollowing()
	case CommandDamage:
		var attacker entity.Entity
		if cmd.TargetID != 0 {
			attacker, _ = s.Registry.ByID(cmd.TargetID)
		}
		a.TakeDamage(cmd.Amount, attacker)
	default:
		return fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
	return nil
}
