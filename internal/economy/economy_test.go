package economy

import (
	"sort"
	"testing"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/entropy"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

func mustRecipe(t *testing.T, s string) entity.Recipe {
	t.Helper()
	r, err := entity.ParseRecipe(s)
	if err != nil {
		t.Fatalf("ParseRecipe(%q): %v", s, err)
	}
	return r
}

// aliceAndBob builds the canonical two-entity world: Alice needs food and
// holds money, Bob stockpiles food and needs nothing.
func aliceAndBob(t *testing.T) *world.World {
	w := world.New()
	alice := w.CreateEntity("Alice", []entity.Recipe{mustRecipe(t, "(1x Food) -> ()")})
	bob := w.CreateEntity("Bob", []entity.Recipe{mustRecipe(t, "() -> (1x Food)")})
	w.Entity(alice).Wares.Add(ware.New(ware.Money, 50))
	w.Entity(bob).Wares.Add(ware.New(ware.Food, 10))
	return w
}

func TestUpdateMarketOffersAliceAndBob(t *testing.T) {
	w := aliceAndBob(t)
	ec := New(entropy.NewSource(1), events.Nop{})
	ec.UpdateMarketOffers(w, 1)

	offers := w.Market().Offers()
	if len(offers) != 2 {
		t.Fatalf("book has %d offers, want 2: %v", len(offers), offers)
	}

	// Sorted book: Food buys before Food sells.
	buy, sell := offers[0], offers[1]
	if buy.Side != market.Buy || buy.Ware != ware.New(ware.Food, 1) ||
		buy.UnitPrice != ware.New(ware.Money, 5) || buy.Owner != 0 {
		t.Fatalf("buy offer = %s", buy)
	}
	if sell.Side != market.Sell || sell.Ware != ware.New(ware.Food, 10) ||
		sell.UnitPrice != ware.New(ware.Money, 5) || sell.Owner != 1 {
		t.Fatalf("sell offer = %s", sell)
	}

	// Generation never touches ledgers.
	if !w.Entity(0).Wares.Equal(ware.StoreOf(ware.New(ware.Money, 50))) {
		t.Fatalf("Alice's ledger mutated: %s", w.Entity(0).Wares)
	}
	if !w.Entity(1).Wares.Equal(ware.StoreOf(ware.New(ware.Food, 10))) {
		t.Fatalf("Bob's ledger mutated: %s", w.Entity(1).Wares)
	}
}

func TestBuyOffersCappedBySpendableMoney(t *testing.T) {
	w := world.New()
	id := w.CreateEntity("miser", []entity.Recipe{mustRecipe(t, "(4x Food) -> ()")})
	w.Entity(id).Wares.Add(ware.New(ware.Money, 12)) // affords 2 units at 5

	ec := New(entropy.NewSource(1), events.Nop{})
	ec.UpdateMarketOffers(w, 1)

	offers := w.Market().Offers()
	if len(offers) != 1 {
		t.Fatalf("book has %d offers, want 1: %v", len(offers), offers)
	}
	if offers[0].Ware != ware.New(ware.Food, 2) {
		t.Fatalf("capped buy = %s, want 2x Food", offers[0])
	}
}

func TestUnaffordableDemandIsDropped(t *testing.T) {
	w := world.New()
	id := w.CreateEntity("pauper", []entity.Recipe{mustRecipe(t, "(1x Food) -> ()")})
	w.Entity(id).Wares.Add(ware.New(ware.Money, 3)) // Food costs 5

	ec := New(entropy.NewSource(1), events.Nop{})
	ec.UpdateMarketOffers(w, 1)

	if n := w.Market().Len(); n != 0 {
		t.Fatalf("book has %d offers, want 0: %v", n, w.Market().Offers())
	}
}

func TestMoneyIsNeverOffered(t *testing.T) {
	w := world.New()
	// Demands money via recipe and holds surplus money: neither side may
	// produce a money offer.
	id := w.CreateEntity("bank", []entity.Recipe{mustRecipe(t, "(5x Money) -> (1x Soil)")})
	w.Entity(id).Wares.Add(ware.New(ware.Money, 100))

	ec := New(entropy.NewSource(1), events.Nop{})
	ec.UpdateMarketOffers(w, 1)

	for _, o := range w.Market().Offers() {
		if o.Ware.Type.IsMoney() {
			t.Fatalf("money offer in the book: %s", o)
		}
	}
}

// offerKey strips construction order so books can be compared as sets.
type offerKey struct {
	w     ware.Ware
	side  market.Side
	price ware.Amount
	owner market.EntityID
}

func bookKeys(m *market.Market) []offerKey {
	keys := make([]offerKey, 0, m.Len())
	for _, o := range m.Offers() {
		keys = append(keys, offerKey{o.Ware, o.Side, o.UnitPrice.Amount, o.Owner})
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.w.Type != b.w.Type {
			return a.w.Type < b.w.Type
		}
		if a.side != b.side {
			return a.side < b.side
		}
		if a.price != b.price {
			return a.price < b.price
		}
		return a.owner < b.owner
	})
	return keys
}

func TestGenerationIsIdempotentAndSeedIndependent(t *testing.T) {
	build := func(seed int64) []offerKey {
		w := world.New()
		a := w.CreateEntity("a", []entity.Recipe{mustRecipe(t, "(2x Food; 1x Water) -> (1x Soil)")})
		b := w.CreateEntity("b", []entity.Recipe{mustRecipe(t, "() -> (1x Water)")})
		w.Entity(a).Wares.Add(ware.New(ware.Money, 11))
		w.Entity(a).Wares.Add(ware.New(ware.Soil, 4))
		w.Entity(b).Wares.Add(ware.New(ware.Water, 6))

		ec := New(entropy.NewSource(seed), events.Nop{})
		ec.UpdateMarketOffers(w, 1)
		first := bookKeys(w.Market())

		// Regenerating without any settlement yields the same offer set.
		ec.UpdateMarketOffers(w, 2)
		second := bookKeys(w.Market())
		if len(first) != len(second) {
			t.Fatalf("regeneration changed the book: %v vs %v", first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("regeneration changed the book: %v vs %v", first, second)
			}
		}
		return first
	}

	// The shuffled demand order must not change the offer set's content.
	k1 := build(1)
	k2 := build(99)
	if len(k1) != len(k2) {
		t.Fatalf("seed changed the offer set: %v vs %v", k1, k2)
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			t.Fatalf("seed changed the offer set: %v vs %v", k1, k2)
		}
	}
}

func TestOfferIDsRecordedOnEntities(t *testing.T) {
	w := aliceAndBob(t)
	ec := New(entropy.NewSource(1), events.Nop{})
	ec.UpdateMarketOffers(w, 1)

	if n := len(w.Entity(0).OfferIDs); n != 1 {
		t.Fatalf("Alice owns %d offers, want 1", n)
	}
	if n := len(w.Entity(1).OfferIDs); n != 1 {
		t.Fatalf("Bob owns %d offers, want 1", n)
	}

	// A second pass replaces, not appends.
	ec.UpdateMarketOffers(w, 2)
	if n := len(w.Entity(0).OfferIDs); n != 1 {
		t.Fatalf("Alice owns %d offers after regen, want 1", n)
	}
}
