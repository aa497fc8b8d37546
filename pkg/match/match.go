// Package match scores recipes against a set of available ingredients by
// ingredient overlap.
package match

import (
	"sort"
	"strings"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

// minMatched is the minimum-signal threshold: recipes with fewer matched
// ingredients are filtered out regardless of their overlap ratio.
const minMatched = 2

// Result annotates a recipe with the ingredient partition computed for one
// query. The base recipe is never mutated.
type Result struct {
	Recipe  domain.Recipe `json:"recipe"`
	Matched []string      `json:"matched"`
	Missing []string      `json:"missing"`
	Ratio   float64       `json:"ratio"`
}

// Recipes scores and filters recipes by ingredient overlap with the
// available ingredients. An ingredient matches when it contains an
// available ingredient as a substring or vice versa, so "tomato" matches
// "canned tomatoes". Recipes with fewer than two matched ingredients are
// dropped, as are recipes whose cook time exceeds maxCookTime when it is
// positive. Results sort by descending match ratio; equal ratios keep the
// catalog order.
func Recipes(recipes []domain.Recipe, available []string, maxCookTime int) []Result {
	normalized := make([]string, 0, len(available))
	for _, a := range available {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(a)))
	}

	var results []Result
	for _, r := range recipes {
		matched, missing := partition(r.Ingredients, normalized)
		if len(matched) < minMatched {
			continue
		}
		if maxCookTime > 0 && r.CookTime > maxCookTime {
			continue
		}
		results = append(results, Result{
			Recipe:  r,
			Matched: matched,
			Missing: missing,
			Ratio:   float64(len(matched)) / float64(len(r.Ingredients)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Ratio > results[j].Ratio
	})

	return results
}

// partition splits a recipe's ingredients into matched and missing against
// the already-lowercased available ingredients.
func partition(ingredients, available []string) (matched, missing []string) {
	for _, ing := range ingredients {
		if isMatched(strings.ToLower(ing), available) {
			matched = append(matched, ing)
		} else {
			missing = append(missing, ing)
		}
	}
	return matched, missing
}

func isMatched(ingredient string, available []string) bool {
	for _, a := range available {
		if a == "" {
			continue
		}
		if strings.Contains(ingredient, a) || strings.Contains(a, ingredient) {
			return true
		}
	}
	return false
}
