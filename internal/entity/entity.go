// Package entity provides the economic agents: named ware holders with
// production recipes and per-side price tables.
package entity

import (
	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/ware"
)

// Entity is one economic agent. Its ledger and offer-id set mutate every
// trading day; the rest is fixed at creation.
type Entity struct {
	Name       string
	Wares      ware.Store
	BuyPrices  ware.PriceTable
	SellPrices ware.PriceTable
	Recipes    []Recipe

	// Offers the entity placed in the current book. Valid only until the
	// book is next cleared.
	OfferIDs []market.OfferID
}

// New creates an entity with an empty ledger and default prices.
func New(name string, recipes []Recipe) *Entity {
	return &Entity{
		Name:       name,
		Wares:      ware.NewStore(),
		BuyPrices:  ware.NewPriceTable(),
		SellPrices: ware.NewPriceTable(),
		Recipes:    append([]Recipe(nil), recipes...),
	}
}

// AddOfferID records an offer the entity placed today.
func (e *Entity) AddOfferID(id market.OfferID) {
	e.OfferIDs = append(e.OfferIDs, id)
}

// ClearOfferIDs forgets the previous day's offers.
func (e *Entity) ClearOfferIDs() {
	e.OfferIDs = e.OfferIDs[:0]
}

// RecipeDemand aggregates the inputs of every recipe the entity holds: the
// quantities it wants to reserve for its own production.
func (e *Entity) RecipeDemand() ware.Store {
	demand := ware.NewStore()
	for _, r := range e.Recipes {
		for _, in := range r.Inputs {
			demand.Add(in)
		}
	}
	return demand
}

// TradePlan partitions the entity's holdings against its recipe demand:
// surplus is what remains after reserving recipe inputs, unmet is the part
// of the demand the ledger could not cover. The ledger itself is untouched;
// wares only move at settlement.
//
// Component-wise: surplus + reserved = inventory, reserved + unmet = demand.
func (e *Entity) TradePlan() (surplus, unmet ware.Store) {
	unmet = e.RecipeDemand()
	surplus = e.Wares.Clone()
	surplus.RemoveBundleUpTo(&unmet)
	return surplus, unmet
}
