// Package clearing resolves each ware's buy and sell offers into trades at
// a single uniform price per ware, and settles them against the entity
// ledgers. It is a pure function of the current book plus the injected
// randomness; nothing persists across trading days.
package clearing

import (
	"fmt"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// Trade is one settled match: quantity of one ware moving seller to buyer
// at the window's uniform clearing price.
type Trade struct {
	Buyer     market.EntityID
	Seller    market.EntityID
	Ware      ware.Ware
	UnitPrice ware.Amount
}

// Clearing matches and settles the daily book.
type Clearing struct {
	rng *entropy.Source
	rec events.Recorder
}

// New creates a clearing engine. rec may be events.Nop{}.
func New(rng *entropy.Source, rec events.Recorder) *Clearing {
	return &Clearing{rng: rng, rec: rec}
}

// ResolveTrades walks the sorted book one ware window at a time, computes
// each window's clearing allocation, and applies it to the ledgers. The
// settled trades are returned for reporting.
func (c *Clearing) ResolveTrades(w *world.World, day uint64) []Trade {
	entities, mkt := w.EntitiesMarket()

	var all []Trade
	it := mkt.Windows()
	for {
		win, ok := it.Next()
		if !ok {
			break
		}
		trades := c.resolveWindow(win)
		for _, tr := range trades {
			settle(entities, tr)
			c.rec.Record(events.Event{
				Day: day, Kind: events.KindTradeSettled,
				Buyer: tr.Buyer, Seller: tr.Seller,
				Ware: tr.Ware, Price: tr.UnitPrice,
			})
		}
		all = append(all, trades...)
	}
	return all
}

// sellTier is a contiguous run of equal-price sell offers, with the
// cumulative quantities at its price: everything selling at <= price and
// everything buying at >= price.
type sellTier struct {
	price   ware.Amount
	end     int // exclusive index into the window's sell slice
	cumSell ware.Amount
	cumBuy  ware.Amount
}

// resolveWindow picks the clearing tier for one ware and allocates quantity
// between the two sides. One tier clears per window per day; quantity the
// chosen tier cannot host simply lapses (offers do not persist).
func (c *Clearing) resolveWindow(win market.Window) []Trade {
	buys, sells := win.Buys(), win.Sells()
	if len(buys) == 0 || len(sells) == 0 {
		return nil
	}

	tiers := sellTiers(buys, sells)

	// The clearing tier maximizes executable volume; price breaks ties so
	// the wares end up with the buyers who value them most.
	best := -1
	var bestVolume ware.Amount
	for i, t := range tiers {
		volume := min(t.cumSell, t.cumBuy)
		if volume >= bestVolume && volume > 0 {
			best, bestVolume = i, volume
		}
	}
	if best < 0 {
		return nil // no price crosses; nothing trades today
	}

	tier := tiers[best]
	inSells := sells[:tier.end]
	inBuys := buys[firstBuyAtOrAbove(buys, tier.price):]

	sellFills := fullFills(inSells)
	buyFills := fullFills(inBuys)
	switch {
	case tier.cumSell > tier.cumBuy:
		sellFills = c.ration(inSells, tier.cumBuy)
	case tier.cumBuy > tier.cumSell:
		buyFills = c.ration(inBuys, tier.cumSell)
	}

	// pair consumes its fill slices, so give it working copies; the
	// originals are still needed to update the book below.
	trades := pair(win.Type, tier.price,
		inBuys, append([]ware.Amount(nil), buyFills...),
		inSells, append([]ware.Amount(nil), sellFills...))

	// Partial fills stay visible in the book: decrement remaining amounts
	// in place.
	for i := range inSells {
		inSells[i].Ware.Amount -= sellFills[i]
	}
	for i := range inBuys {
		inBuys[i].Ware.Amount -= buyFills[i]
	}
	return trades
}

// sellTiers partitions the ascending sell slice into equal-price runs and
// precomputes both cumulative sides at each tier price. The buy side is
// scanned from the tail: buys are stored price-ascending, so the highest
// willingness to pay sits at the end.
func sellTiers(buys, sells []market.Offer) []sellTier {
	var tiers []sellTier
	var cumSell ware.Amount
	for i := 0; i < len(sells); {
		price := sells[i].UnitPrice.Amount
		end := i
		for end < len(sells) && sells[end].UnitPrice.Amount == price {
			cumSell += sells[end].Ware.Amount
			end++
		}

		var cumBuy ware.Amount
		for j := len(buys) - 1; j >= 0 && buys[j].UnitPrice.Amount >= price; j-- {
			cumBuy += buys[j].Ware.Amount
		}

		tiers = append(tiers, sellTier{price: price, end: end, cumSell: cumSell, cumBuy: cumBuy})
		i = end
	}
	return tiers
}

func firstBuyAtOrAbove(buys []market.Offer, price ware.Amount) int {
	for i, o := range buys {
		if o.UnitPrice.Amount >= price {
			return i
		}
	}
	return len(buys)
}

func fullFills(offers []market.Offer) []ware.Amount {
	fills := make([]ware.Amount, len(offers))
	for i, o := range offers {
		fills[i] = o.Ware.Amount
	}
	return fills
}

// ration allocates quota units across the abundant side's offers by
// quantity-proportional random draws without replacement: every requested
// unit is one ball in the urn, and quota balls are drawn. An offer's
// expected fill is quota * (requested / total requested), and no offer can
// be filled past its request. By construction quota < total.
func (c *Clearing) ration(offers []market.Offer, quota ware.Amount) []ware.Amount {
	remaining := fullFills(offers)
	var total ware.Amount
	for _, r := range remaining {
		total += r
	}

	fills := make([]ware.Amount, len(offers))
	for drawn := ware.Amount(0); drawn < quota; drawn++ {
		pick := ware.Amount(c.rng.Uint64n(uint64(total)))
		var acc ware.Amount
		for i, r := range remaining {
			acc += r
			if pick < acc {
				fills[i]++
				remaining[i]--
				total--
				break
			}
		}
	}
	return fills
}

// pair turns the two sides' fills into buyer/seller trade triples with a
// two-pointer sweep. Fill totals on both sides are equal by construction.
func pair(t ware.Type, price ware.Amount, buys []market.Offer, buyFills []ware.Amount,
	sells []market.Offer, sellFills []ware.Amount) []Trade {

	var trades []Trade
	bi, si := 0, 0
	for bi < len(buys) && si < len(sells) {
		if buyFills[bi] == 0 {
			bi++
			continue
		}
		if sellFills[si] == 0 {
			si++
			continue
		}
		q := min(buyFills[bi], sellFills[si])
		trades = append(trades, Trade{
			Buyer:     buys[bi].Owner,
			Seller:    sells[si].Owner,
			Ware:      ware.New(t, q),
			UnitPrice: price,
		})
		buyFills[bi] -= q
		sellFills[si] -= q
	}
	return trades
}

// settle applies one trade to both ledgers: ware seller to buyer, money
// buyer to seller. Offers are only generated against verified availability,
// so a shortfall here is a broken invariant, not a recoverable error.
func settle(entities []*entity.Entity, tr Trade) {
	buyer := entities[tr.Buyer]
	seller := entities[tr.Seller]

	if _, err := seller.Wares.RemoveExact(tr.Ware); err != nil {
		panic(fmt.Sprintf("settlement: seller %q cannot deliver %s: %v", seller.Name, tr.Ware, err))
	}
	buyer.Wares.Add(tr.Ware)

	cost := ware.New(ware.Money, tr.UnitPrice*tr.Ware.Amount)
	if _, err := buyer.Wares.RemoveExact(cost); err != nil {
		panic(fmt.Sprintf("settlement: buyer %q cannot pay %s: %v", buyer.Name, cost, err))
	}
	seller.Wares.Add(cost)
}
