// Simulation ties the world, the offer generator, and the clearing engine
// together and runs them as one trading day per tick.
package engine

import (
	"log/slog"

	"github.com/talgya/wareworld/internal/clearing"
	"github.com/talgya/wareworld/internal/economy"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// Simulation holds the complete economic state and wires the subsystems.
type Simulation struct {
	World    *world.World
	Economy  *economy.Economy
	Clearing *clearing.Clearing
	Recorder events.Recorder
	LastDay  uint64

	Stats SimStats
}

// SimStats tracks aggregate state after the most recent day.
type SimStats struct {
	Entities    int         `json:"entities"`
	Offers      int         `json:"offers"`
	Trades      int         `json:"trades"`
	Volume      uint64      `json:"volume"`       // units traded, all wares
	TotalMoney  ware.Amount `json:"total_money"`  // across all ledgers
	Productions int         `json:"productions"`  // recipe cycles executed
}

// NewSimulation wires a simulation around an existing world.
func NewSimulation(w *world.World, rng *entropy.Source, rec events.Recorder) *Simulation {
	if rec == nil {
		rec = events.Nop{}
	}
	return &Simulation{
		World:    w,
		Economy:  economy.New(rng, rec),
		Clearing: clearing.New(rng, rec),
		Recorder: rec,
	}
}

// RunDay executes one full trading day: production, then offer generation,
// then clearing and settlement.
func (s *Simulation) RunDay(day uint64) {
	s.LastDay = day

	productions := s.runProduction()
	s.Economy.UpdateMarketOffers(s.World, day)
	offers := s.World.Market().Len()
	trades := s.Clearing.ResolveTrades(s.World, day)

	s.updateStats(offers, trades, productions)
	s.Recorder.Record(events.Event{
		Day: day, Kind: events.KindDayCompleted,
		Offers: offers, Trades: len(trades),
	})

	slog.Info("trading day",
		"day", day,
		"entities", s.Stats.Entities,
		"productions", productions,
		"offers", offers,
		"trades", len(trades),
		"volume", s.Stats.Volume,
		"total_money", s.Stats.TotalMoney,
	)
}

// runProduction executes every recipe whose inputs the owner can cover,
// one cycle per recipe per day. Inputs are removed atomically: a recipe
// with any shortfall does nothing this day.
func (s *Simulation) runProduction() int {
	cycles := 0
	for _, e := range s.World.Entities() {
		for _, r := range e.Recipes {
			bundle := ware.NewStore()
			for _, in := range r.Inputs {
				bundle.Add(in)
			}
			if _, err := e.Wares.RemoveBundleAtomic(bundle); err != nil {
				continue
			}
			for _, out := range r.Outputs {
				e.Wares.Add(out)
			}
			cycles++
		}
	}
	return cycles
}

func (s *Simulation) updateStats(offers int, trades []clearing.Trade, productions int) {
	var volume uint64
	for _, tr := range trades {
		volume += uint64(tr.Ware.Amount)
	}

	var totalMoney ware.Amount
	for _, e := range s.World.Entities() {
		totalMoney += e.Wares.AmountOf(ware.Money)
	}

	s.Stats = SimStats{
		Entities:    s.World.EntityCount(),
		Offers:      offers,
		Trades:      len(trades),
		Volume:      volume,
		TotalMoney:  totalMoney,
		Productions: productions,
	}
}
