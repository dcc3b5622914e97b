package entity

import (
	"fmt"
	"strings"

	"github.com/talgya/wareworld/internal/ware"
)

// Recipe is a production rule: one cycle consumes the inputs and yields the
// outputs. Recipes define production, they do not execute it.
type Recipe struct {
	Inputs  []ware.Ware
	Outputs []ware.Ware
}

// NewRecipe builds a recipe from input and output wares.
func NewRecipe(inputs, outputs []ware.Ware) Recipe {
	return Recipe{Inputs: inputs, Outputs: outputs}
}

// String renders the recipe in the textual notation, e.g.
// "(1x Food; 2x Water) -> (1x Soil)".
func (r Recipe) String() string {
	return fmt.Sprintf("(%s) -> (%s)", joinWares(r.Inputs), joinWares(r.Outputs))
}

func joinWares(ws []ware.Ware) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// ParseRecipe reads a recipe from the notation
// "(w1; w2) -> (w3)" where each w is a ware like "2x Water". Either side
// may be empty: "() -> (1x Food)".
func ParseRecipe(s string) (Recipe, error) {
	s = strings.TrimSpace(s)
	lhs, rhs, ok := strings.Cut(s, "->")
	if !ok {
		return Recipe{}, fmt.Errorf("recipe %q: missing '->'", s)
	}
	inputs, err := parseWareList(lhs)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe %q inputs: %w", s, err)
	}
	outputs, err := parseWareList(rhs)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe %q outputs: %w", s, err)
	}
	return NewRecipe(inputs, outputs), nil
}

func parseWareList(s string) ([]ware.Ware, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("ware list %q: not parenthesized", s)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return nil, nil
	}
	var ws []ware.Ware
	for _, part := range strings.Split(s, ";") {
		w, err := ware.Parse(part)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return ws, nil
}
