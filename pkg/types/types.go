// Package domain defines the core business types for trolley.
package domain

import (
	"math"
	"time"
)

// Store identifies one of the supported supermarket chains.
type Store string

// Store constants, in canonical display order.
const (
	StorePaknSave   Store = "Pak'nSave"
	StoreNewWorld   Store = "New World"
	StoreWoolworths Store = "Woolworths"
)

// Stores lists all supported stores in canonical order.
var Stores = []Store{StorePaknSave, StoreNewWorld, StoreWoolworths}

// StoreInfo carries display metadata for a store.
type StoreInfo struct {
	Name    Store  `json:"name"`
	Logo    string `json:"logo"`
	Color   string `json:"color"`
	BgColor string `json:"bg_color"`
	Tagline string `json:"tagline"`
}

// Category represents a product category.
type Category string

// Category constants.
const (
	CategoryFruitVeg    Category = "Fruits & Vegetables"
	CategoryMeatSeafood Category = "Meat & Seafood"
	CategoryDairyEggs   Category = "Dairy & Eggs"
	CategoryBakery      Category = "Bakery"
	CategoryPantry      Category = "Pantry"
	CategoryFrozen      Category = "Frozen"
	CategoryDrinks      Category = "Drinks"
	CategorySnacks      Category = "Snacks"
	CategoryHousehold   Category = "Household"
	CategoryHealth      Category = "Health & Beauty"
)

// Categories lists all product categories in display order.
var Categories = []Category{
	CategoryFruitVeg,
	CategoryMeatSeafood,
	CategoryDairyEggs,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryDrinks,
	CategorySnacks,
	CategoryHousehold,
	CategoryHealth,
}

// Difficulty represents the skill level of a recipe.
type Difficulty string

// Difficulty constants.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// StorePrice is one store's pricing for a product. When the product is on
// special and a special price is present, the special price is the one
// actually charged; the nominal price is retained for savings comparisons.
type StorePrice struct {
	Store        Store      `json:"store"`
	Price        float64    `json:"price"`
	OnSpecial    bool       `json:"on_special"`
	SpecialPrice *float64   `json:"special_price,omitempty"`
	SpecialLabel string     `json:"special_label,omitempty"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
}

// Effective returns the price actually charged: the special price when the
// entry is on special and carries one, the nominal price otherwise.
func (sp *StorePrice) Effective() float64 {
	if sp.OnSpecial && sp.SpecialPrice != nil {
		return *sp.SpecialPrice
	}
	return sp.Price
}

// Product is immutable catalog reference data.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Category Category `json:"category"`
	Image    string   `json:"image"`
	Unit     string   `json:"unit"`
	Size     string   `json:"size"`
}

// ProductWithPrices is a product plus its per-store prices, at most one
// entry per store. Fixed at load time, never mutated.
type ProductWithPrices struct {
	Product
	Prices []StorePrice `json:"prices"`
}

// PricePoint names a store and a price, used for cheapest and
// most-expensive query results.
type PricePoint struct {
	Store Store   `json:"store"`
	Price float64 `json:"price"`
}

// Available reports whether the price point refers to a real store entry.
// Products with no prices yield sentinel points; callers must check before
// displaying.
func (pp PricePoint) Available() bool {
	return pp.Store != ""
}

// CheapestPrice returns the store with the lowest effective price. Ties go
// to the first entry in the price list. A product with no prices yields the
// sentinel {store:"", price:+Inf}.
func (p *ProductWithPrices) CheapestPrice() PricePoint {
	cheapest := PricePoint{Price: math.Inf(1)}
	for i := range p.Prices {
		if eff := p.Prices[i].Effective(); eff < cheapest.Price {
			cheapest = PricePoint{Store: p.Prices[i].Store, Price: eff}
		}
	}
	return cheapest
}

// MostExpensivePrice returns the store with the highest nominal price,
// deliberately ignoring specials. Used as the worst-case baseline when
// computing savings. A product with no prices yields {store:"", price:0}.
func (p *ProductWithPrices) MostExpensivePrice() PricePoint {
	expensive := PricePoint{}
	for i := range p.Prices {
		if p.Prices[i].Price > expensive.Price {
			expensive = PricePoint{Store: p.Prices[i].Store, Price: p.Prices[i].Price}
		}
	}
	return expensive
}

// PriceAt returns the store's price entry for this product, or nil when the
// product is not sold there.
func (p *ProductWithPrices) PriceAt(store Store) *StorePrice {
	for i := range p.Prices {
		if p.Prices[i].Store == store {
			return &p.Prices[i]
		}
	}
	return nil
}

// OnSpecialAt reports whether the product is on special at the given store.
func (p *ProductWithPrices) OnSpecialAt(store Store) bool {
	sp := p.PriceAt(store)
	return sp != nil && sp.OnSpecial
}

// Recipe is immutable recipe reference data. Ingredient names are lowercase.
type Recipe struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
}

// ShoppingListItem is one entry in the shopping list. The item ID equals the
// product ID; at most one item exists per product.
type ShoppingListItem struct {
	ID       string            `json:"id"`
	Product  ProductWithPrices `json:"product"`
	Quantity int               `json:"quantity"`
	Checked  bool              `json:"checked"`
}

// StoreGroup is the subset of a shopping list assigned to the store where
// its items are cheapest. Derived, never persisted.
type StoreGroup struct {
	Store Store              `json:"store"`
	Items []ShoppingListItem `json:"items"`
	Total float64            `json:"total"`
}

// OptimizedList is the result of partitioning a shopping list into
// per-store groups. Derived, never persisted.
type OptimizedList struct {
	Groups        []StoreGroup `json:"groups"`
	TotalCost     float64      `json:"total_cost"`
	TotalSavings  float64      `json:"total_savings"`
	WorstCaseCost float64      `json:"worst_case_cost"`
}

// ScannedProduct is the outcome of a simulated barcode scan: the recognized
// product plus same-category alternatives.
type ScannedProduct struct {
	Product      ProductWithPrices   `json:"product"`
	Alternatives []ProductWithPrices `json:"alternatives"`
}
