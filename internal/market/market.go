package market

import (
	"sort"

	"github.com/talgya/wareworld/internal/ware"
)

// Market is the offer book for one trading day. The book is refilled from
// scratch every day; no offer survives a call to ClearOffers.
type Market struct {
	offers []Offer
}

// New creates an empty book.
func New() *Market {
	return &Market{}
}

// CreateOffer appends an offer and returns its id (the creation position).
// Constructing an offer with a zero amount is a caller bug and panics.
func (m *Market) CreateOffer(w ware.Ware, side Side, unitPrice ware.Ware, owner EntityID) OfferID {
	id := OfferID(len(m.offers))
	m.offers = append(m.offers, newOffer(id, w, side, unitPrice, owner))
	return id
}

// ClearOffers empties the book, invalidating all outstanding offer ids.
func (m *Market) ClearOffers() {
	m.offers = m.offers[:0]
}

// Offers exposes the book read-only, for reporting.
func (m *Market) Offers() []Offer {
	return m.offers
}

// Len reports the number of offers in the book.
func (m *Market) Len() int {
	return len(m.offers)
}

// Sort orders the book by (ware type, side, unit price ascending). Grouping
// by type and side keeps each ware's buy and sell runs contiguous for the
// window iterator; ascending price within a side is the clearing tie-break.
// Buy sorts before Sell within a type. The sort is stable so equal offers
// keep creation order.
func (m *Market) Sort() {
	sort.SliceStable(m.offers, func(i, j int) bool {
		a, b := m.offers[i], m.offers[j]
		if a.Ware.Type != b.Ware.Type {
			return a.Ware.Type < b.Ware.Type
		}
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		return a.UnitPrice.Amount < b.UnitPrice.Amount
	})
}
