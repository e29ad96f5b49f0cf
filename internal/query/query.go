// Package query derives the visible subset of parts from a search string
// and stock filters.
package query

import (
	"strings"

	"github.com/erazemk/partstock/internal/model"
)

// LowStockThreshold is the highest combined vehicle and warehouse stock
// that still counts as low.
const LowStockThreshold = 3

// Filters are the stock toggles. They compose with the search and with
// each other conjunctively.
type Filters struct {
	LowStock       bool
	NoVehicleStock bool
}

// Engine matches parts against search terms. The zero value uses the loose
// per-character alias fallback; Strict limits matching to substrings.
type Engine struct {
	Strict bool
}

// Visible filters parts with the default engine.
func Visible(parts []model.Part, search string, filters Filters) []model.Part {
	return Engine{}.Visible(parts, search, filters)
}

// Visible returns the parts that match every search term and every enabled
// filter, in their original order.
func (e Engine) Visible(parts []model.Part, search string, filters Filters) []model.Part {
	terms := Terms(search)
	out := make([]model.Part, 0, len(parts))
	for _, p := range parts {
		if filters.LowStock && p.VehicleStock.Int()+p.WarehouseStock.Int() > LowStockThreshold {
			continue
		}
		if filters.NoVehicleStock && p.VehicleStock.Int() != 0 {
			continue
		}
		if !e.Match(p, terms) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Terms splits a search string into lowercase whitespace-separated terms.
// A blank search has no terms.
func Terms(search string) []string {
	return strings.Fields(strings.ToLower(search))
}

// Match reports whether every term matches the part. No terms match
// everything.
func (e Engine) Match(p model.Part, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	name := normalize(p.Name)
	aliases := make([]string, len(p.Aliases))
	for i, a := range p.Aliases {
		aliases[i] = normalize(a)
	}
	joined := strings.Join(aliases, "")

	for _, term := range terms {
		if !e.matchTerm(term, name, aliases, joined) {
			return false
		}
	}
	return true
}

func (e Engine) matchTerm(term, name string, aliases []string, joined string) bool {
	if strings.Contains(name, term) || strings.Contains(joined, term) {
		return true
	}
	for _, a := range aliases {
		if strings.Contains(a, term) {
			return true
		}
	}
	if e.Strict || len([]rune(term)) < 2 {
		return false
	}
	return coversCharacters(term, aliases)
}

// coversCharacters reports whether each character of term occurs in at
// least one alias. The characters need not be adjacent or in the same
// alias.
func coversCharacters(term string, aliases []string) bool {
	if len(aliases) == 0 {
		return false
	}
	for _, r := range term {
		found := false
		for _, a := range aliases {
			if strings.ContainsRune(a, r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(model.StripSpace(s))
}
