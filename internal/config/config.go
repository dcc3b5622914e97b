// Package config loads simulation scenarios from YAML. Wares and recipes
// use the textual notation ("50x Money", "(1x Food) -> ()") so scenario
// files read the way the economy talks.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/ware"
	"github.com/talgya/wareworld/internal/world"
)

// Scenario describes a starting world.
type Scenario struct {
	Seed     int64           `yaml:"seed"`
	Days     int             `yaml:"days"`
	Entities []EntityConfig  `yaml:"entities"`
}

// EntityConfig describes one entity's starting state.
type EntityConfig struct {
	Name       string            `yaml:"name"`
	Wares      []string          `yaml:"wares"`       // e.g. "50x Money"
	Recipes    []string          `yaml:"recipes"`     // e.g. "(1x Food) -> ()"
	BuyPrices  map[string]uint64 `yaml:"buy_prices"`  // ware type name -> unit price
	SellPrices map[string]uint64 `yaml:"sell_prices"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Entities) == 0 {
		return nil, fmt.Errorf("scenario %s: no entities", path)
	}
	return &sc, nil
}

// Build constructs the world the scenario describes.
func (sc *Scenario) Build() (*world.World, error) {
	w := world.New()
	for _, ec := range sc.Entities {
		if ec.Name == "" {
			return nil, fmt.Errorf("entity without a name")
		}

		recipes := make([]entity.Recipe, 0, len(ec.Recipes))
		for _, rs := range ec.Recipes {
			r, err := entity.ParseRecipe(rs)
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", ec.Name, err)
			}
			recipes = append(recipes, r)
		}

		id := w.CreateEntity(ec.Name, recipes)
		e := w.Entity(id)

		for _, ws := range ec.Wares {
			wr, err := ware.Parse(ws)
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", ec.Name, err)
			}
			e.Wares.Add(wr)
		}

		if err := applyPrices(&e.BuyPrices, ec.BuyPrices); err != nil {
			return nil, fmt.Errorf("entity %s buy prices: %w", ec.Name, err)
		}
		if err := applyPrices(&e.SellPrices, ec.SellPrices); err != nil {
			return nil, fmt.Errorf("entity %s sell prices: %w", ec.Name, err)
		}
	}
	return w, nil
}

func applyPrices(table *ware.PriceTable, prices map[string]uint64) error {
	for name, price := range prices {
		t, err := ware.ParseType(name)
		if err != nil {
			return err
		}
		table.SetPrice(t, ware.Amount(price))
	}
	return nil
}
