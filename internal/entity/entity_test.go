package entity

import (
	"testing"

	"github.com/talgya/wareworld/internal/ware"
)

func TestTradePlanAllSurplus(t *testing.T) {
	// Bob produces food from nothing and holds a stockpile: everything is
	// tradable, nothing is unmet.
	bob := New("Bob", []Recipe{NewRecipe(nil, []ware.Ware{ware.New(ware.Food, 1)})})
	bob.Wares.Add(ware.New(ware.Food, 10))

	surplus, unmet := bob.TradePlan()
	if !surplus.Equal(ware.StoreOf(ware.New(ware.Food, 10))) {
		t.Fatalf("surplus = %s, want [10x Food]", surplus)
	}
	if unmet.Len() != 0 {
		t.Fatalf("unmet = %s, want empty", unmet)
	}
}

func TestTradePlanPartition(t *testing.T) {
	e := New("mill", []Recipe{
		NewRecipe([]ware.Ware{ware.New(ware.Food, 2), ware.New(ware.Water, 3)}, nil),
		NewRecipe([]ware.Ware{ware.New(ware.Water, 1)}, nil),
	})
	e.Wares.Add(ware.New(ware.Food, 5))
	e.Wares.Add(ware.New(ware.Water, 1))
	e.Wares.Add(ware.New(ware.Money, 8))

	inventory := e.Wares.Clone()
	demand := e.RecipeDemand() // 2x Food, 4x Water
	surplus, unmet := e.TradePlan()

	if !surplus.Equal(ware.StoreOf(ware.New(ware.Food, 3), ware.New(ware.Money, 8))) {
		t.Fatalf("surplus = %s", surplus)
	}
	if !unmet.Equal(ware.StoreOf(ware.New(ware.Water, 3))) {
		t.Fatalf("unmet = %s", unmet)
	}

	// surplus + reserved = inventory and reserved + unmet = demand,
	// component-wise.
	for _, wt := range ware.Types() {
		reserved := demand.AmountOf(wt) - unmet.AmountOf(wt)
		if surplus.AmountOf(wt)+reserved != inventory.AmountOf(wt) {
			t.Errorf("%s: surplus %d + reserved %d != inventory %d",
				wt, surplus.AmountOf(wt), reserved, inventory.AmountOf(wt))
		}
	}

	// The plan never touches the ledger.
	if !e.Wares.Equal(inventory) {
		t.Fatalf("TradePlan mutated the ledger: %s", e.Wares)
	}
}

func TestParseRecipe(t *testing.T) {
	r, err := ParseRecipe("(1x Food; 2x Water) -> (1x Soil)")
	if err != nil {
		t.Fatalf("ParseRecipe: %v", err)
	}
	if len(r.Inputs) != 2 || len(r.Outputs) != 1 {
		t.Fatalf("recipe = %s", r)
	}
	if r.Inputs[1] != ware.New(ware.Water, 2) || r.Outputs[0] != ware.New(ware.Soil, 1) {
		t.Fatalf("recipe = %s", r)
	}

	r, err = ParseRecipe("() -> (1x Food)")
	if err != nil || len(r.Inputs) != 0 || len(r.Outputs) != 1 {
		t.Fatalf("empty-input recipe = %s, err %v", r, err)
	}
}

func TestParseRecipeErrors(t *testing.T) {
	for _, in := range []string{"1x Food -> 1x Soil", "(1x Food) (1x Soil)", "(1 Food) -> ()"} {
		if _, err := ParseRecipe(in); err == nil {
			t.Errorf("ParseRecipe(%q) succeeded, want error", in)
		}
	}
}

func TestRecipeStringRoundTrip(t *testing.T) {
	r := NewRecipe([]ware.Ware{ware.New(ware.Water, 2)}, []ware.Ware{ware.New(ware.Food, 1)})
	got, err := ParseRecipe(r.String())
	if err != nil {
		t.Fatalf("round trip %q: %v", r.String(), err)
	}
	if got.String() != r.String() {
		t.Fatalf("round trip %q -> %q", r.String(), got.String())
	}
}
