// Command valechron inspects the journal database left behind by valesim
// runs.
//
// Usage:
//
//	valechron [-db path] runs
//	valechron [-db path] events <run-id> [-n 50]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmercer/vale/internal/chronicle"
)

func main() {
	dbPath := flag.String("db", "data/vale.db", "journal database path")
	flag.Parse()

	db, err := chronicle.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	args := flag.Args()
	cmd := "runs"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "runs":
		if err := listRuns(db); err != nil {
			fmt.Fprintf(os.Stderr, "list runs: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: valechron events <run-id> [limit]")
			os.Exit(2)
		}
		limit := 50
		if len(args) > 2 {
			fmt.Sscanf(args[2], "%d", &limit)
		}
		if err := listEvents(db, args[1], limit); err != nil {
			fmt.Fprintf(os.Stderr, "list events: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want runs or events)\n", cmd)
		os.Exit(2)
	}
}

func listRuns(db *chronicle.DB) error {
	runs, err := db.Runs(20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		started := r.StartedAt
		if t, err := time.Parse(time.RFC3339, r.StartedAt); err == nil {
			started = humanize.Time(t)
		}
		fmt.Printf("%s  seed=%-12d %s events, started %s\n",
			r.ID, r.Seed, humanize.Comma(int64(r.Events)), started)
	}
	return nil
}

func listEvents(db *chronicle.DB, runID string, limit int) error {
	events, err := db.RecentEvents(runID, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events for that run.")
		return nil
	}

	// Newest first from the query; print oldest first.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		fmt.Printf("tick %-8d [%s] %s\n", e.Tick, e.Category, e.Description)
	}
	return nil
}
