package engine

import (
	"testing"

	"github.com/jmercer/vale/internal/sim"
)

func TestStepAdvancesOneFrameAndPublishes(t *testing.T) {
	world := sim.New(1)
	eng := New(world)

	var published []sim.Snapshot
	eng.OnFrame = func(snap sim.Snapshot) { published = append(published, snap) }

	eng.Step()
	eng.Step()

	if world.CurrentTick() != 2 {
		t.Fatalf("expected 2 ticks, got %d", world.CurrentTick())
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published frames, got %d", len(published))
	}
	if published[1].Tick != 2 {
		t.Fatalf("expected snapshot of tick 2, got %d", published[1].Tick)
	}
}

func TestSpeedScalesSimTime(t *testing.T) {
	world := sim.New(1)
	eng := New(world)
	eng.SetSpeed(2)

	eng.Step()
	want := eng.Interval.Seconds() * 2
	if got := world.SimTime(); got != want {
		t.Fatalf("expected sim time %.3f, got %.3f", want, got)
	}
}

func TestSpeedAdjustableWhileStepping(t *testing.T) {
	world := sim.New(1)
	eng := New(world)

	// Speed is written from request goroutines while the loop reads it, so
	// concurrent access must be clean under the race detector.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			eng.SetSpeed(float64(i%4) + 1)
		}
	}()
	for i := 0; i < 100; i++ {
		eng.Step()
	}
	<-done

	if got := eng.Speed(); got < 1 || got > 4 {
		t.Fatalf("expected speed in [1, 4], got %.1f", got)
	}
	if world.CurrentTick() != 100 {
		t.Fatalf("expected 100 ticks, got %d", world.CurrentTick())
	}
}
