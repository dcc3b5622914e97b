// Package worldgen builds starting worlds from layered simplex noise.
// Fertility and moisture fields decide what each homestead produces and
// how it is endowed, so a seed deterministically yields a full economy.
package worldgen

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// Config holds generation parameters.
type Config struct {
	Width  int   // Grid width in homesteads
	Height int   // Grid height in homesteads
	Seed   int64 // Noise seed; the same seed yields the same world
}

// DefaultConfig returns a small market town: enough entities for every
// ware to find both sides of the book.
func DefaultConfig() Config {
	return Config{Width: 6, Height: 6, Seed: 1}
}

// noiseScale stretches the grid over the noise field so neighboring
// homesteads differ without being pure static.
const noiseScale = 0.35

// Generate creates a world populated from the noise fields.
func Generate(cfg Config) *world.World {
	fertility := opensimplex.NewNormalized(cfg.Seed)
	moisture := opensimplex.NewNormalized(cfg.Seed + 1)

	w := world.New()
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			f := fertility.Eval2(float64(x)*noiseScale, float64(y)*noiseScale)
			m := moisture.Eval2(float64(x)*noiseScale, float64(y)*noiseScale)
			placeHomestead(w, x, y, f, m)
		}
	}
	return w
}

// placeHomestead turns one grid cell's noise sample into an entity.
func placeHomestead(w *world.World, x, y int, fertility, moisture float64) {
	n := len(nameStems)
	stem := nameStems[(x+y*31)%n]

	switch {
	case moisture > 0.62:
		// Wet ground: a well, producing water from nothing.
		id := w.CreateEntity(fmt.Sprintf("%s Well", stem), []entity.Recipe{
			entity.NewRecipe(nil, []ware.Ware{ware.New(ware.Water, 2)}),
		})
		e := w.Entity(id)
		e.Wares.Add(ware.New(ware.Water, ware.Amount(4+moisture*8)))
		e.Wares.Add(ware.New(ware.Money, 10))

	case fertility > 0.55:
		// Fertile ground: a farm turning water and soil into food.
		id := w.CreateEntity(fmt.Sprintf("%s Farm", stem), []entity.Recipe{
			entity.NewRecipe(
				[]ware.Ware{ware.New(ware.Water, 1), ware.New(ware.Soil, 1)},
				[]ware.Ware{ware.New(ware.Food, 3)},
			),
		})
		e := w.Entity(id)
		e.Wares.Add(ware.New(ware.Food, ware.Amount(2+fertility*10)))
		e.Wares.Add(ware.New(ware.Soil, 3))
		e.Wares.Add(ware.New(ware.Money, 20))

	case fertility < 0.32:
		// Barren ground: a quarry digging soil, its workers fed from market.
		id := w.CreateEntity(fmt.Sprintf("%s Quarry", stem), []entity.Recipe{
			entity.NewRecipe(
				[]ware.Ware{ware.New(ware.Food, 1)},
				[]ware.Ware{ware.New(ware.Soil, 2)},
			),
		})
		e := w.Entity(id)
		e.Wares.Add(ware.New(ware.Soil, 6))
		e.Wares.Add(ware.New(ware.Money, 25))

	default:
		// A plain homestead: consumes food and water, lives off its purse.
		id := w.CreateEntity(fmt.Sprintf("%s Stead", stem), []entity.Recipe{
			entity.NewRecipe(
				[]ware.Ware{ware.New(ware.Food, 1), ware.New(ware.Water, 1)},
				nil,
			),
		})
		e := w.Entity(id)
		e.Wares.Add(ware.New(ware.Money, 40))
	}
}

var nameStems = []string{
	"Aldern", "Briar", "Coldbrook", "Dunmere", "Eastvale", "Fenwick",
	"Greenhollow", "Harrow", "Ivymoor", "Kestrel", "Longfield", "Marrow",
	"Northgate", "Oakrest", "Pebbleford", "Quillon", "Ravenshaw", "Stonewick",
	"Thistledown", "Underhill", "Vexley", "Westmarch", "Yarrow", "Zephyrine",
}
