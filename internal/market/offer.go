// Package market provides the daily offer book: trade intents collected
// from every entity, kept in a matching-friendly order, and sliced into
// per-ware windows for clearing.
package market

import (
	"fmt"

	"github.com/talgya/wareworld/internal/ware"
)

// EntityID identifies the entity that owns an offer. It is the entity's
// dense index in the world, assigned at creation and never reused.
type EntityID int

// OfferID is an offer's position in the book at creation time. IDs are only
// valid until the book is next cleared.
type OfferID int

// Side says whether an offer buys or sells its ware.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// Offer is a standing intent to buy or sell a quantity of one ware at a
// per-unit Money price. The Ware amount is decremented in place as the
// offer fills during clearing.
type Offer struct {
	ID        OfferID     `json:"id"`
	Ware      ware.Ware   `json:"ware"`
	Side      Side        `json:"side"`
	UnitPrice ware.Ware   `json:"unit_price"`
	Owner     EntityID    `json:"owner"`
}

func newOffer(id OfferID, w ware.Ware, side Side, unitPrice ware.Ware, owner EntityID) Offer {
	if w.Amount == 0 {
		panic(fmt.Sprintf("offer with zero amount: %s %s by entity %d", side, w.Type, owner))
	}
	if !unitPrice.Type.IsMoney() {
		panic(fmt.Sprintf("offer priced in %s, must be Money", unitPrice.Type))
	}
	return Offer{ID: id, Ware: w, Side: side, UnitPrice: unitPrice, Owner: owner}
}

// Remaining is the unfilled quantity of the offer.
func (o Offer) Remaining() ware.Amount {
	return o.Ware.Amount
}

// TotalPrice values the remaining quantity at the quoted unit price.
func (o Offer) TotalPrice() ware.Ware {
	return ware.New(ware.Money, o.UnitPrice.Amount*o.Ware.Amount)
}

func (o Offer) String() string {
	return fmt.Sprintf("%s %s @ %s each (entity %d)", o.Side, o.Ware, o.UnitPrice, o.Owner)
}
