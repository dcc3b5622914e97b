// Package economy turns entity inventories and recipe needs into the daily
// offer book: surplus becomes sell offers, unmet recipe demand becomes buy
// offers bounded by spendable money.
package economy

import (
	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// Economy generates market offers for every entity once per trading day.
type Economy struct {
	rng *entropy.Source
	rec events.Recorder
}

// New creates the offer generator. rec may be events.Nop{}.
func New(rng *entropy.Source, rec events.Recorder) *Economy {
	return &Economy{rng: rng, rec: rec}
}

// UpdateMarketOffers clears the book and refills it from every entity's
// trade plan, then sorts the book for clearing. Ledgers are not touched;
// wares and money only move at settlement.
func (ec *Economy) UpdateMarketOffers(w *world.World, day uint64) {
	entities, mkt := w.EntitiesMarket()
	mkt.ClearOffers()

	for id, e := range entities {
		ec.generateFor(mkt, market.EntityID(id), e, day)
	}

	mkt.Sort()
}

func (ec *Economy) generateFor(mkt *market.Market, id market.EntityID, e *entity.Entity, day uint64) {
	surplus, unmet := e.TradePlan()
	e.ClearOfferIDs()

	// Everything not reserved for production is for sale, except money.
	for _, t := range surplus.TypesSorted() {
		if t.IsMoney() {
			continue
		}
		offer := ware.New(t, surplus.AmountOf(t))
		oid := mkt.CreateOffer(offer, market.Sell, e.SellPrices.UnitPriceWare(t), id)
		e.AddOfferID(oid)
		ec.recordOffer(mkt, oid, day)
	}

	// Buy offers are bounded by a spendable-money counter, not the ledger:
	// money committed here only leaves the ledger at settlement. Demand is
	// processed in randomized order so no ware type is systematically
	// favored when the money runs out.
	money := surplus.AmountOf(ware.Money)
	types := unmet.TypesSorted()
	ec.rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })

	for _, t := range types {
		if t.IsMoney() {
			continue
		}
		unitPrice := e.BuyPrices.UnitPrice(t)
		want := unmet.AmountOf(t)

		affordable := want
		if unitPrice > 0 {
			affordable = ware.Amount(uint64(money) / uint64(unitPrice))
		}
		amount := min(want, affordable)
		if amount == 0 {
			// Cannot afford a single unit today; the demand lapses until
			// the next generation pass.
			continue
		}

		oid := mkt.CreateOffer(ware.New(t, amount), market.Buy, ware.New(ware.Money, unitPrice), id)
		e.AddOfferID(oid)
		money -= amount * unitPrice
		ec.recordOffer(mkt, oid, day)
	}
}

func (ec *Economy) recordOffer(mkt *market.Market, id market.OfferID, day uint64) {
	o := mkt.Offers()[int(id)]
	ec.rec.Record(events.Event{Day: day, Kind: events.KindOfferCreated, Offer: &o})
}
