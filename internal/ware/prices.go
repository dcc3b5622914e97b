package ware

// PriceTable maps ware types to unit prices in Money. Types without an
// explicit entry fall back to the type default.
type PriceTable struct {
	prices map[Type]Amount
}

// NewPriceTable creates a table with no overrides.
func NewPriceTable() PriceTable {
	return PriceTable{prices: make(map[Type]Amount)}
}

// SetPrice sets an explicit unit price for one type.
func (p *PriceTable) SetPrice(t Type, price Amount) {
	if p.prices == nil {
		p.prices = make(map[Type]Amount)
	}
	p.prices[t] = price
}

// UnitPrice returns the explicit unit price for t, or the type default.
func (p PriceTable) UnitPrice(t Type) Amount {
	if price, ok := p.prices[t]; ok {
		return price
	}
	return t.DefaultPrice()
}

// UnitPriceWare returns the unit price as a Money ware, the form an offer
// carries as its per-unit price.
func (p PriceTable) UnitPriceWare(t Type) Ware {
	return New(Money, p.UnitPrice(t))
}

// TotalPrice values a ware quantity at the table's unit price, in Money.
func (p PriceTable) TotalPrice(w Ware) Ware {
	return New(Money, p.UnitPrice(w.Type)*w.Amount)
}

// Clone returns an independent copy of the table.
func (p PriceTable) Clone() PriceTable {
	c := NewPriceTable()
	for t, price := range p.prices {
		c.prices[t] = price
	}
	return c
}

// Overrides lists the explicitly set prices (used by persistence).
func (p PriceTable) Overrides() map[Type]Amount {
	out := make(map[Type]Amount, len(p.prices))
	for t, price := range p.prices {
		out[t] = price
	}
	return out
}
