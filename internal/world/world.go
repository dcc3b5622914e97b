// Package world owns the entity population and the daily offer book.
package world

import (
	"fmt"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/market"
)

// EntityID indexes directly into the world's entity list. IDs are dense,
// assigned at creation, and never reused within a world's lifetime.
type EntityID = market.EntityID

// World holds the entity set and the market for the current trading day.
// Entities persist; the market is cleared and refilled every day.
type World struct {
	entities []*entity.Entity
	market   *market.Market
}

// New creates an empty world.
func New() *World {
	return &World{market: market.New()}
}

// CreateEntity adds an entity and returns its id.
func (w *World) CreateEntity(name string, recipes []entity.Recipe) EntityID {
	id := EntityID(len(w.entities))
	w.entities = append(w.entities, entity.New(name, recipes))
	return id
}

// Entity returns the entity with the given id. The pointer stays valid for
// the world's lifetime; mutate through it freely between ticks.
func (w *World) Entity(id EntityID) *entity.Entity {
	if int(id) < 0 || int(id) >= len(w.entities) {
		panic(fmt.Sprintf("entity id %d out of range (have %d entities)", id, len(w.entities)))
	}
	return w.entities[id]
}

// EntityCount reports how many entities exist.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// Entities exposes the entity list. The slice itself must not be grown or
// shrunk by callers; CreateEntity owns the layout.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// Market returns the current offer book.
func (w *World) Market() *market.Market {
	return w.market
}

// EntitiesMarket hands out the entity list and the market together, for the
// generation pass that walks entities while filling the book.
func (w *World) EntitiesMarket() ([]*entity.Entity, *market.Market) {
	return w.entities, w.market
}
