package ware

import "testing"

func TestParseWare(t *testing.T) {
	cases := []struct {
		in   string
		want Ware
	}{
		{"4x Money", New(Money, 4)},
		{"2x Food", New(Food, 2)},
		{"3xSoil", New(Soil, 3)},
		{"  7x Water ", New(Water, 7)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseWareErrors(t *testing.T) {
	for _, in := range []string{"3 x Money", "Money", "x Food", "-1x Food", "2x Gold"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestWareStringRoundTrip(t *testing.T) {
	w := New(Food, 12)
	got, err := Parse(w.String())
	if err != nil || got != w {
		t.Fatalf("round trip %q -> %v, %v", w.String(), got, err)
	}
}

func TestPriceTableFallback(t *testing.T) {
	p := NewPriceTable()
	if got := p.UnitPrice(Food); got != 5 {
		t.Fatalf("default Food price = %d, want 5", got)
	}

	p.SetPrice(Food, 9)
	if got := p.UnitPrice(Food); got != 9 {
		t.Fatalf("override Food price = %d, want 9", got)
	}
	if got := p.TotalPrice(New(Food, 3)); got != New(Money, 27) {
		t.Fatalf("TotalPrice = %v, want 27x Money", got)
	}
	if got := p.UnitPriceWare(Water); got != New(Money, 1) {
		t.Fatalf("UnitPriceWare = %v, want 1x Money", got)
	}
}
