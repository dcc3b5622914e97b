// Command wareworld runs the agent economy as a long-lived server: one
// trading day per tick, world state persisted to SQLite, observation over
// HTTP and websockets.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/talgya/wareworld/internal/api"
	"github.com/talgya/wareworld/internal/config"
	"github.com/talgya/wareworld/internal/engine"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/persistence"
	"github.com/talgya/wareworld/internal/world"
	"github.com/talgya/wareworld/internal/worldgen"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario to build the world from (default: generated world)")
		dbPath       = flag.String("db", "data/wareworld.db", "SQLite database path")
		port         = flag.Int("port", 8080, "HTTP API port")
		seed         = flag.Int64("seed", 1, "world and trading seed (0 picks a random one)")
		speed        = flag.Float64("speed", 1.0, "days per second multiplier (0 starts paused)")
		verbose      = flag.Bool("v", false, "log individual offers and trades")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("wareworld — agent economy simulation")

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	runID, err := db.RunID()
	if err != nil {
		slog.Error("failed to establish run id", "error", err)
		os.Exit(1)
	}

	// ── Load or Build World ───────────────────────────────────────────
	var w *world.World
	var startDay uint64

	switch {
	case db.HasWorldState():
		slog.Info("found saved world state, loading...")
		w, startDay, err = db.LoadWorld()
		if err != nil {
			slog.Error("failed to load world", "error", err)
			os.Exit(1)
		}
		// A resumed run keeps trading on the seed it started with.
		if v, err := db.GetMeta("seed"); err == nil {
			if s, err := strconv.ParseInt(v, 10, 64); err == nil {
				*seed = s
			}
		}
		slog.Info("world state restored", "entities", w.EntityCount(), "day", startDay)

	case *scenarioPath != "":
		slog.Info("building world from scenario", "path", *scenarioPath)
		sc, err := config.Load(*scenarioPath)
		if err != nil {
			slog.Error("failed to load scenario", "error", err)
			os.Exit(1)
		}
		if sc.Seed != 0 {
			*seed = sc.Seed
		}
		w, err = sc.Build()
		if err != nil {
			slog.Error("failed to build scenario", "error", err)
			os.Exit(1)
		}

	default:
		slog.Info("no saved state or scenario, generating world", "seed", *seed)
		cfg := worldgen.DefaultConfig()
		cfg.Seed = *seed
		w = worldgen.Generate(cfg)
	}

	slog.Info("world ready", "entities", w.EntityCount(), "run_id", runID)

	// ── Simulation ────────────────────────────────────────────────────
	ring := events.NewRing(512)
	hub := api.NewHub()
	go hub.Run()

	rec := events.Tee{events.Logger{}, ring, hub}
	sim := engine.NewSimulation(w, entropy.NewSource(*seed), rec)
	sim.LastDay = startDay

	// Save on fresh generation so a crash before the first day still
	// leaves a restorable world.
	if startDay == 0 {
		if err := db.SaveWorld(w, 0); err != nil {
			slog.Error("initial save failed", "error", err)
		}
		if err := db.SetMeta("seed", strconv.FormatInt(*seed, 10)); err != nil {
			slog.Error("seed save failed", "error", err)
		}
	}

	eng := engine.NewEngine()
	eng.Day = startDay
	eng.Speed = *speed
	eng.OnDay = func(day uint64) {
		sim.RunDay(day)
		if err := db.SaveWorld(w, day); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Sim:   sim,
		Ring:  ring,
		Hub:   hub,
		RunID: runID,
		Port:  *port,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nWareworld is trading: %d entities, run %s.\n", w.EntityCount(), runID)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	if startDay > 0 {
		fmt.Printf("Resuming from day %d\n", startDay)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	slog.Info("final save...")
	if err := db.SaveWorld(w, sim.LastDay); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. World state saved.")
}
