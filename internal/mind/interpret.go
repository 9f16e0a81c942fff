package mind

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jmercer/vale/internal/entity"
)

// Step is one action in an interpreted script.
type Step struct {
	Action   string  `json:"action"` // move, speak, attack, follow, stop
	X        float64 `json:"x,omitempty"`
	Z        float64 `json:"z,omitempty"`
	Target   string  `json:"target,omitempty"` // entity name
	Message  string  `json:"message,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Running  bool    `json:"running,omitempty"`
}

// Observation is one entity as seen in a world snapshot. The API layer maps
// snapshot views into these, so interpretation never touches live world
// state from outside the simulation goroutine.
type Observation struct {
	ID         entity.ID
	Kind       string
	Name       string
	Profession string
	X, Z       float64
	Health     float64 // fraction in [0, 1]
	Dead       bool
}

// maxSteps caps interpreted scripts so one request cannot monopolize an
// agent indefinitely.
const maxSteps = 5

// observeRadius bounds which entities make it into the prompt.
const observeRadius = 40.0

const systemPrompt = `You translate a player's free-text request into a short action script for one agent in a 3D world (ground plane, coordinates x/z).

Respond with ONLY a JSON array of steps, no prose. Each step is an object:
  {"action": "move", "x": 10.5, "z": -3.0, "running": false}
  {"action": "move", "target": "<entity name>", "running": true}
  {"action": "speak", "message": "...", "duration": 3.0}
  {"action": "attack", "target": "<entity name>"}
  {"action": "follow", "target": "<entity name>"}
  {"action": "stop"}

Rules:
- At most 5 steps.
- Only reference entities listed in the context.
- If the request is impossible or nonsensical, respond with a single speak step explaining why in character.`

// Interpret asks the model to turn a free-text request into a script. The
// actor must be present in obs; everything else in obs becomes prompt
// context, closest first.
func Interpret(ctx context.Context, c *Client, actorID entity.ID, obs []Observation, request string) ([]Step, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("mind client not configured")
	}

	scene, err := buildContext(actorID, obs)
	if err != nil {
		return nil, fmt.Errorf("interpret: %w", err)
	}

	text, err := c.Complete(ctx, systemPrompt, scene+"\nRequest: "+request, 512)
	if err != nil {
		return nil, fmt.Errorf("interpret: %w", err)
	}

	steps, err := parseSteps(text)
	if err != nil {
		return nil, fmt.Errorf("interpret: %w", err)
	}
	return steps, nil
}

// buildContext describes the actor and its surroundings for the prompt.
func buildContext(actorID entity.ID, obs []Observation) (string, error) {
	var actor *Observation
	for i := range obs {
		if obs[i].ID == actorID {
			actor = &obs[i]
			break
		}
	}
	if actor == nil {
		return "", fmt.Errorf("actor %d not in snapshot", actorID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %s at (%.1f, %.1f).\n",
		actor.Name, actor.Profession, actor.X, actor.Z)
	fmt.Fprintf(&b, "Health: %.0f%%.\n", actor.Health*100)

	type nearby struct {
		o    Observation
		dist float64
	}
	var near []nearby
	for _, o := range obs {
		if o.ID == actorID || o.Dead {
			continue
		}
		d := math.Hypot(o.X-actor.X, o.Z-actor.Z)
		if d <= observeRadius {
			near = append(near, nearby{o, d})
		}
	}
	sort.Slice(near, func(i, j int) bool { return near[i].dist < near[j].dist })

	if len(near) == 0 {
		b.WriteString("Nothing nearby.\n")
		return b.String(), nil
	}
	b.WriteString("Nearby:\n")
	for _, n := range near {
		fmt.Fprintf(&b, "- %s (%s) at (%.1f, %.1f), %.1fm away\n",
			n.o.Name, n.o.Kind, n.o.X, n.o.Z, n.dist)
	}
	return b.String(), nil
}

// parseSteps extracts and validates the JSON step array from the model's
// response, tolerating surrounding prose.
func parseSteps(text string) ([]Step, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var steps []Step
	if err := json.Unmarshal([]byte(text[start:end+1]), &steps); err != nil {
		return nil, fmt.Errorf("parse steps: %w", err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}

	for i, s := range steps {
		switch s.Action {
		case "move":
			// Either coordinates or a target name.
		case "speak":
			if s.Message == "" {
				return nil, fmt.Errorf("step %d: speak without message", i)
			}
		case "attack", "follow":
			if s.Target == "" {
				return nil, fmt.Errorf("step %d: %s without target", i, s.Action)
			}
		case "stop":
		default:
			return nil, fmt.Errorf("step %d: unknown action %q", i, s.Action)
		}
	}
	return steps, nil
}
