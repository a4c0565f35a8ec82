// Package restaurant defines the candidate records a tournament is run over
// and the preference filter used to narrow them down.
// It has no external dependencies.
package restaurant

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// AnyCuisine matches every cuisine in a Filter.
const AnyCuisine = "any"

// Candidate is a single restaurant. Values are never mutated once read from
// the catalog.
type Candidate struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Cuisine  string  `json:"cuisine"`
	Budget   int     `json:"budget"`
	Rating   float64 `json:"rating"`
	Distance float64 `json:"distance"`
}

// BudgetLabel renders the budget tier as repeated dollar signs.
func (c Candidate) BudgetLabel() string {
	if c.Budget <= 0 {
		return ""
	}
	return strings.Repeat("$", c.Budget)
}

// Filter narrows the catalog before seeding. MaxBudget nil means no budget
// constraint. MaxDistance has no "any" value.
type Filter struct {
	Cuisine     string  `json:"cuisine"`
	MaxBudget   *int    `json:"maxBudget"`
	MaxDistance float64 `json:"maxDistance"`
}

// Match reports whether c passes every constraint in f.
func (f Filter) Match(c Candidate) bool {
	if f.Cuisine != AnyCuisine && c.Cuisine != f.Cuisine {
		return false
	}
	if f.MaxBudget != nil && c.Budget > *f.MaxBudget {
		return false
	}
	return c.Distance <= f.MaxDistance
}

//go:embed restaurants.json
var defaultDataset []byte

// DefaultDataset returns the built-in restaurant list in dataset order.
func DefaultDataset() ([]Candidate, error) {
	var cs []Candidate
	if err := json.Unmarshal(defaultDataset, &cs); err != nil {
		return nil, fmt.Errorf("decoding default dataset: %w", err)
	}
	return cs, nil
}
