// Package ware provides the commodity model: typed wares, per-entity
// ledgers, and price tables.
package ware

import "fmt"

// Type enumerates the commodity kinds the economy trades.
// Money is a ware like any other, but there is no market in money itself.
type Type uint8

const (
	Food Type = iota
	Water
	Soil
	Money

	numTypes
)

// Amount is a non-negative ware quantity.
type Amount uint64

// Types lists every ware type in canonical (book-sort) order.
func Types() []Type {
	ts := make([]Type, 0, numTypes)
	for t := Type(0); t < numTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// DefaultPrice is the type-level unit price used when an entity's price
// table has no explicit entry.
func (t Type) DefaultPrice() Amount {
	switch t {
	case Food:
		return 5
	case Water, Soil, Money:
		return 1
	default:
		return 1
	}
}

// IsMoney reports whether the type is the currency ware.
func (t Type) IsMoney() bool {
	return t == Money
}

func (t Type) String() string {
	switch t {
	case Food:
		return "Food"
	case Water:
		return "Water"
	case Soil:
		return "Soil"
	case Money:
		return "Money"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Ware is a quantified unit of one commodity. A zero amount is a valid
// transient value but is never stored in a ledger.
type Ware struct {
	Type   Type
	Amount Amount
}

// New builds a ware value.
func New(t Type, amount Amount) Ware {
	return Ware{Type: t, Amount: amount}
}

// String renders the ware in the textual notation, e.g. "10x Food".
func (w Ware) String() string {
	return fmt.Sprintf("%dx %s", w.Amount, w.Type)
}
