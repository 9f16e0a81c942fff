// Command valesim runs the Vale agent simulation: a seeded world of
// villagers, resources, and one player slot, served over HTTP.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/jmercer/vale/internal/api"
	"github.com/jmercer/vale/internal/chronicle"
	"github.com/jmercer/vale/internal/engine"
	"github.com/jmercer/vale/internal/mind"
	"github.com/jmercer/vale/internal/sim"
	"github.com/jmercer/vale/internal/worldgen"
)

func main() {
	var (
		seed    = flag.Int64("seed", 42, "world seed")
		port    = flag.Int("port", 8080, "HTTP API port")
		dbPath  = flag.String("db", "data/vale.db", "journal database path (empty = no journal)")
		speed   = flag.Float64("speed", 1, "simulation speed multiplier (0 = paused)")
		hz      = flag.Int("hz", 20, "frames per second")
		npcs    = flag.Int("npcs", 8, "number of villagers to spawn")
		player  = flag.String("player", "Wanderer", "player agent name")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("Vale — agent simulation", "seed", *seed)

	// ── Simulation ─────────────────────────────────────────────────────
	world := sim.New(*seed)

	// ── Journal ────────────────────────────────────────────────────────
	var db *chronicle.DB
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		var err error
		db, err = chronicle.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		journal, err := chronicle.NewJournal(db, *seed)
		if err != nil {
			slog.Error("failed to begin run", "error", err)
			os.Exit(1)
		}
		world.SetRecorder(journal)
		slog.Info("journal opened", "path", *dbPath, "run", journal.RunID)
	}

	// ── World generation ───────────────────────────────────────────────
	cfg := worldgen.DefaultConfig(*seed)
	cfg.NPCCount = *npcs
	layout := worldgen.Generate(cfg)
	worldgen.Populate(world, cfg, layout, *player)
	world.Registry.Commit()

	slog.Info("world ready",
		"agents", *npcs+1,
		"resources", len(layout.Resources),
	)

	// ── Engine ─────────────────────────────────────────────────────────
	eng := engine.New(world)
	eng.SetSpeed(*speed)
	if *hz > 0 {
		eng.Interval = time.Second / time.Duration(*hz)
	}

	// ── Mind service ───────────────────────────────────────────────────
	mindClient := mind.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if mindClient.Enabled() {
		slog.Info("mind service enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — interpreted commands disabled")
	}

	// ── HTTP API ───────────────────────────────────────────────────────
	adminKey := os.Getenv("VALE_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("VALE_ADMIN_KEY not set — command endpoints disabled")
	}

	server := &api.Server{
		Sim:      world,
		Eng:      eng,
		Mind:     mindClient,
		Port:     *port,
		AdminKey: adminKey,
	}
	server.Start()
	eng.OnFrame = server.Publish

	// ── Start ──────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nVale is alive: %s agents among %s resources.\n",
		humanize.Comma(int64(*npcs+1)), humanize.Comma(int64(len(layout.Resources))))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	fmt.Printf("Simulation stopped at tick %s.\n", humanize.Comma(int64(world.CurrentTick())))
}
