package chronicle

import (
	"path/filepath"
	"testing"

	"github.com/jmercer/vale/internal/sim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEventRoundTrip(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.BeginRun(42)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}

	events := []sim.Event{
		{Tick: 1, Category: "speech", Description: "Aldric says hello"},
		{Tick: 2, Category: "combat", Description: "Brenna strikes Aldric"},
		{Tick: 3, Category: "death", Description: "Aldric has died"},
	}
	if err := db.SaveEvents(runID, events); err != nil {
		t.Fatalf("save events: %v", err)
	}

	got, err := db.RecentEvents(runID, 10)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Tick != 3 || got[0].Category != "death" {
		t.Fatalf("unexpected newest event: %+v", got[0])
	}
}

func TestRecentEventsRespectsLimitAndRun(t *testing.T) {
	db := openTestDB(t)

	run1, _ := db.BeginRun(1)
	run2, _ := db.BeginRun(2)

	for i := 0; i < 5; i++ {
		db.SaveEvents(run1, []sim.Event{{Tick: uint64(i), Category: "combat", Description: "clang"}})
	}
	db.SaveEvents(run2, []sim.Event{{Tick: 1, Category: "speech", Description: "quiet here"}})

	got, err := db.RecentEvents(run1, 3)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(got))
	}
	for _, e := range got {
		if e.Category != "combat" {
			t.Fatalf("expected only run1 events, got %+v", e)
		}
	}
}

func TestRunsListsCounts(t *testing.T) {
	db := openTestDB(t)

	run1, _ := db.BeginRun(7)
	db.SaveEvents(run1, []sim.Event{
		{Tick: 1, Category: "speech", Description: "a"},
		{Tick: 2, Category: "speech", Description: "b"},
	})
	db.BeginRun(8)

	runs, err := db.Runs(10)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	if byID[run1].Events != 2 {
		t.Fatalf("expected 2 events on run1, got %d", byID[run1].Events)
	}
}

func TestJournalRecordsThroughRecorderInterface(t *testing.T) {
	db := openTestDB(t)

	journal, err := NewJournal(db, 42)
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}

	var rec sim.Recorder = journal
	rec.Record([]sim.Event{{Tick: 9, Category: "harvest", Description: "a tree was depleted"}})

	got, err := db.RecentEvents(journal.RunID, 1)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(got) != 1 || got[0].Tick != 9 {
		t.Fatalf("expected the recorded event, got %+v", got)
	}
}

func TestSaveEventsEmptyBatchIsNoop(t *testing.T) {
	db := openTestDB(t)
	runID, _ := db.BeginRun(1)
	if err := db.SaveEvents(runID, nil); err != nil {
		t.Fatalf("expected empty batch accepted, got %v", err)
	}
}
