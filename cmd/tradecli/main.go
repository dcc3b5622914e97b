// Command tradecli runs a scenario offline for a fixed number of days and
// prints the resulting ledgers and market report. No database, no API:
// load, trade, report, exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/wareworld/internal/config"
	"github.com/talgya/wareworld/internal/engine"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
	"github.com/talgya/wareworld/internal/worldgen"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario to run (default: generated world)")
		days         = flag.Int("days", 10, "number of trading days to run")
		seed         = flag.Int64("seed", 1, "trading seed (0 picks a random one)")
		verbose      = flag.Bool("v", false, "log individual offers and trades")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var w *world.World
	if *scenarioPath != "" {
		sc, err := config.Load(*scenarioPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		if sc.Seed != 0 {
			*seed = sc.Seed
		}
		if sc.Days > 0 {
			*days = sc.Days
		}
		w, err = sc.Build()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	} else {
		cfg := worldgen.DefaultConfig()
		cfg.Seed = *seed
		w = worldgen.Generate(cfg)
	}

	var rec events.Recorder = events.Nop{}
	if *verbose {
		rec = events.Logger{}
	}
	sim := engine.NewSimulation(w, entropy.NewSource(*seed), rec)

	var totalTrades, totalVolume uint64
	for day := uint64(1); day <= uint64(*days); day++ {
		sim.RunDay(day)
		totalTrades += uint64(sim.Stats.Trades)
		totalVolume += sim.Stats.Volume
	}

	printReport(w, *days, totalTrades, totalVolume)
}

func printReport(w *world.World, days int, trades, volume uint64) {
	fmt.Printf("=== %d entities after %d trading days ===\n\n", w.EntityCount(), days)

	for id, e := range w.Entities() {
		fmt.Printf("%3d  %-22s %s\n", id, e.Name, e.Wares)
		for _, r := range e.Recipes {
			fmt.Printf("     %24s %s\n", "", r)
		}
	}

	var totalMoney ware.Amount
	counts := make(map[ware.Type]ware.Amount)
	for _, e := range w.Entities() {
		for _, t := range e.Wares.TypesSorted() {
			counts[t] += e.Wares.AmountOf(t)
		}
	}
	totalMoney = counts[ware.Money]

	fmt.Println("\n=== totals ===")
	for _, t := range ware.Types() {
		if counts[t] == 0 {
			continue
		}
		fmt.Printf("%8s  %s\n", t, humanize.Comma(int64(counts[t])))
	}
	fmt.Printf("\ntrades settled: %s, units moved: %s, money in circulation: %s\n",
		humanize.Comma(int64(trades)), humanize.Comma(int64(volume)), humanize.Comma(int64(totalMoney)))

	book := w.Market().Offers()
	open := 0
	for _, o := range book {
		if o.Remaining() > 0 {
			open++
		}
	}
	fmt.Printf("open offers at close: %d of %d\n", open, len(book))
}
