// Package sim ties the registry, agents, and resources into one updatable
// simulation with an inbound command queue, an event feed, and snapshot
// construction for external observers.
package sim

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/jmercer/vale/internal/entity"
)

// Event is a notable occurrence in the world.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Category    string `json:"category" db:"category"` // "death", "combat", "speech", ...
	Description string `json:"description" db:"description"`
}

// Recorder receives batches of events as they happen. Satisfied by the
// chronicle journal; a nil recorder drops them.
type Recorder interface {
	Record(events []Event)
}

// TickHook runs inside the simulation tick, after entity updates. It
// returns false when finished and should be dropped. Used by the mind
// service to replay command scripts within the single-threaded tick.
type TickHook interface {
	Tick(dt float64) bool
}

// Keep at most this many events in the in-memory feed.
const eventRingSize = 1000

// Simulation holds the world and wires its systems together. Update runs
// on exactly one goroutine; the only cross-goroutine entry points are
// Enqueue and AddHook, which stage work behind a mutex for the next tick.
type Simulation struct {
	Registry *entity.Registry
	RNG      *rand.Rand

	tick     uint64
	simTime  float64
	events   []Event
	pending  []Event // emitted this tick, not yet recorded
	recorder Recorder
	hooks    []TickHook

	mu           sync.Mutex
	inbound      []Command
	pendingHooks []TickHook
}

// New creates an empty simulation around a fresh registry.
func New(seed int64) *Simulation {
	return &Simulation{
		Registry: entity.NewRegistry(),
		RNG:      rand.New(rand.NewSource(seed)),
	}
}

// SetRecorder installs the event sink. Call before the loop starts.
func (s *Simulation) SetRecorder(r Recorder) {
	s.recorder = r
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 { return s.tick }

// SimTime returns elapsed simulation time in seconds.
func (s *Simulation) SimTime() float64 { return s.simTime }

// Emit appends an event to the feed, stamped with the current tick. Agents
// and resources are handed this method as their event callback.
func (s *Simulation) Emit(category, description string) {
	ev := Event{Tick: s.tick, Category: category, Description: description}
	s.events = append(s.events, ev)
	s.pending = append(s.pending, ev)
	if len(s.events) > eventRingSize {
		s.events = s.events[len(s.events)-eventRingSize:]
	}
}

// RecentEvents returns up to limit most recent events, oldest first.
func (s *Simulation) RecentEvents(limit int) []Event {
	start := 0
	if limit > 0 && len(s.events) > limit {
		start = len(s.events) - limit
	}
	out := make([]Event, len(s.events)-start)
	copy(out, s.events[start:])
	return out
}

// Enqueue stages a command for the next tick. Safe to call from any
// goroutine; this is how the API layer and player input reach the world.
func (s *Simulation) Enqueue(cmd Command) {
	s.mu.Lock()
	s.inbound = append(s.inbound, cmd)
	s.mu.Unlock()
}

// AddHook stages a tick hook for the next tick. Safe to call from any
// goroutine.
func (s *Simulation) AddHook(h TickHook) {
	s.mu.Lock()
	s.pendingHooks = append(s.pendingHooks, h)
	s.mu.Unlock()
}

// Update advances the world by dt seconds: drain staged commands, commit
// registry mutations, update every entity, run tick hooks, and flush new
// events to the recorder.
func (s *Simulation) Update(dt float64) {
	s.tick++
	s.simTime += dt

	s.drainInbound()
	s.Registry.Update(dt)
	s.runHooks(dt)

	if len(s.pending) > 0 {
		if s.recorder != nil {
			s.recorder.Record(s.pending)
		}
		s.pending = s.pending[:0]
	}
}

func (s *Simulation) drainInbound() {
	s.mu.Lock()
	cmds := s.inbound
	s.inbound = nil
	hooks := s.pendingHooks
	s.pendingHooks = nil
	s.mu.Unlock()

	s.hooks = append(s.hooks, hooks...)
	for _, cmd := range cmds {
		if err := s.apply(cmd); err != nil {
			slog.Debug("command dropped", "agent", cmd.AgentID, "kind", cmd.Kind, "error", err)
		}
	}
}

func (s *Simulation) runHooks(dt float64) {
	kept := s.hooks[:0]
	for _, h := range s.hooks {
		if h.Tick(dt) {
			kept = append(kept, h)
		}
	}
	s.hooks = kept
}
