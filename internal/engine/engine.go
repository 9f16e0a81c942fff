// Package engine provides the frame driver: a fixed-step loop that advances
// the simulation with a scaled delta time and publishes a snapshot after
// every frame.
package engine

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/jmercer/vale/internal/sim"
)

// DefaultInterval is the base frame interval (20 Hz).
const DefaultInterval = 50 * time.Millisecond

// Engine drives the simulation forward.
type Engine struct {
	Sim      *sim.Simulation
	Interval time.Duration // base frame interval

	// OnFrame receives the post-update snapshot each frame — the bridge to
	// the API layer and render clients. Optional.
	OnFrame func(snap sim.Snapshot)

	// speed holds the time multiplier as float bits. The API layer adjusts
	// it from request goroutines while the loop reads it every frame.
	speed   atomic.Uint64
	running atomic.Bool
}

// New creates an engine with default settings around the given simulation.
func New(s *sim.Simulation) *Engine {
	e := &Engine{
		Sim:      s,
		Interval: DefaultInterval,
	}
	e.SetSpeed(1)
	return e
}

// Speed returns the current time multiplier. 1.0 is real-time, 0 is paused.
func (e *Engine) Speed() float64 {
	return math.Float64frombits(e.speed.Load())
}

// SetSpeed sets the time multiplier. Safe to call from any goroutine.
func (e *Engine) SetSpeed(v float64) {
	e.speed.Store(math.Float64bits(v))
}

// Run starts the frame loop. Blocks until Stop is called. Each frame
// advances simulation time by Interval × Speed regardless of how long the
// frame took to compute, so behavior scales with the simulation clock, not
// the wall clock.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("engine started", "interval", e.Interval, "speed", e.Speed())

	for e.running.Load() {
		speed := e.Speed()
		if speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		dt := e.Interval.Seconds() * speed
		e.Sim.Update(dt)

		if e.OnFrame != nil {
			e.OnFrame(e.Sim.Snapshot())
		}

		if elapsed := time.Since(start); elapsed < e.Interval {
			time.Sleep(e.Interval - elapsed)
		}
	}

	slog.Info("engine stopped", "tick", e.Sim.CurrentTick())
}

// Stop halts the frame loop. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Step advances the simulation by exactly one frame without pacing. Used by
// tests and tooling.
func (e *Engine) Step() {
	dt := e.Interval.Seconds() * e.Speed()
	e.Sim.Update(dt)
	if e.OnFrame != nil {
		e.OnFrame(e.Sim.Snapshot())
	}
}
