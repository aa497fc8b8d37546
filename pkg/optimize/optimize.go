// Package optimize partitions a shopping list into per-store groups that
// minimize the total spend, assigning every item to the store where its
// effective price is lowest.
package optimize

import (
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// Optimize assigns each item to its cheapest-effective-price store and
// totals the result. The worst case buys every item at its highest nominal
// price, ignoring specials, which makes the savings estimate deliberately
// conservative. Groups appear in first-encountered order; items whose
// product carries no prices are skipped.
func Optimize(items []domain.ShoppingListItem) domain.OptimizedList {
	buckets := map[domain.Store][]domain.ShoppingListItem{}
	var order []domain.Store

	var totalCost, worstCaseCost float64

	for _, item := range items {
		cheapest := item.Product.CheapestPrice()
		if !cheapest.Available() {
			continue
		}
		expensive := item.Product.MostExpensivePrice()

		qty := float64(item.Quantity)
		totalCost += cheapest.Price * qty
		worstCaseCost += expensive.Price * qty

		if _, seen := buckets[cheapest.Store]; !seen {
			order = append(order, cheapest.Store)
		}
		buckets[cheapest.Store] = append(buckets[cheapest.Store], item)
	}

	groups := make([]domain.StoreGroup, 0, len(order))
	for _, store := range order {
		groups = append(groups, domain.StoreGroup{
			Store: store,
			Items: buckets[store],
			Total: groupTotal(store, buckets[store]),
		})
	}

	return domain.OptimizedList{
		Groups:        groups,
		TotalCost:     totalCost,
		TotalSavings:  worstCaseCost - totalCost,
		WorstCaseCost: worstCaseCost,
	}
}

// groupTotal recomputes a group's spend from the store-specific price
// entries. For a correctly assigned group this equals the sum of the items'
// cheapest effective prices.
func groupTotal(store domain.Store, items []domain.ShoppingListItem) float64 {
	var total float64
	for _, item := range items {
		sp := item.Product.PriceAt(store)
		if sp == nil {
			continue
		}
		total += sp.Effective() * float64(item.Quantity)
	}
	return total
}
