// Package catalog provides the static product and recipe catalog. Data is
// embedded at build time and validated at load; the catalog is read-only
// after construction.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

//go:embed seed/products.json seed/recipes.json
var seedFS embed.FS

// storeInfos carries display metadata for the supported stores, in
// canonical order.
var storeInfos = []domain.StoreInfo{
	{Name: domain.StorePaknSave, Logo: "🟡", Color: "#1565c0", BgColor: "#fdd835", Tagline: "NZ's Lowest Food Prices"},
	{Name: domain.StoreNewWorld, Logo: "🔴", Color: "#ffffff", BgColor: "#e31837", Tagline: "Fresh & Friendly"},
	{Name: domain.StoreWoolworths, Logo: "🟢", Color: "#ffffff", BgColor: "#00a651", Tagline: "The Fresh Food People"},
}

// Catalog holds the immutable product and recipe reference data.
type Catalog struct {
	products []domain.ProductWithPrices
	byID     map[string]int
	recipes  []domain.Recipe
}

// New loads the embedded seed data and validates it.
func New() (*Catalog, error) {
	var products []domain.ProductWithPrices
	if err := loadSeed("seed/products.json", &products); err != nil {
		return nil, err
	}

	var recipes []domain.Recipe
	if err := loadSeed("seed/recipes.json", &recipes); err != nil {
		return nil, err
	}

	return NewFromData(products, recipes)
}

// NewFromData builds a catalog from explicit data. Used by New and by tests
// that need a small fixed catalog.
func NewFromData(
	products []domain.ProductWithPrices,
	recipes []domain.Recipe,
) (*Catalog, error) {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		recipes:  recipes,
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	for i := range c.products {
		c.byID[c.products[i].ID] = i
	}

	// Ingredient matching is case-insensitive; normalize once at load.
	for i := range c.recipes {
		for j, ing := range c.recipes[i].Ingredients {
			c.recipes[i].Ingredients[j] = strings.ToLower(ing)
		}
	}

	return c, nil
}

func loadSeed(name string, dst any) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading seed %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing seed %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	var errs []error

	seen := make(map[string]struct{}, len(c.products))
	for i := range c.products {
		p := &c.products[i]
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("product %d: missing id", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %s: duplicate id", p.ID))
		}
		seen[p.ID] = struct{}{}

		stores := make(map[domain.Store]struct{}, len(p.Prices))
		for _, sp := range p.Prices {
			if _, dup := stores[sp.Store]; dup {
				errs = append(errs, fmt.Errorf("product %s: duplicate price entry for %s", p.ID, sp.Store))
			}
			stores[sp.Store] = struct{}{}

			if sp.Price < 0 {
				errs = append(errs, fmt.Errorf("product %s: negative price at %s", p.ID, sp.Store))
			}
			if sp.SpecialPrice != nil && *sp.SpecialPrice < 0 {
				errs = append(errs, fmt.Errorf("product %s: negative special price at %s", p.ID, sp.Store))
			}
		}
	}

	seenRecipes := make(map[string]struct{}, len(c.recipes))
	for i := range c.recipes {
		r := &c.recipes[i]
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("recipe %d: missing id", i))
			continue
		}
		if _, dup := seenRecipes[r.ID]; dup {
			errs = append(errs, fmt.Errorf("recipe %s: duplicate id", r.ID))
		}
		seenRecipes[r.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []domain.ProductWithPrices {
	return c.products
}

// ProductByID looks up a product by id.
func (c *Catalog) ProductByID(id string) (*domain.ProductWithPrices, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

// ProductsByCategory returns products in the given category, in catalog order.
func (c *Catalog) ProductsByCategory(category domain.Category) []domain.ProductWithPrices {
	var out []domain.ProductWithPrices
	for i := range c.products {
		if c.products[i].Category == category {
			out = append(out, c.products[i])
		}
	}
	return out
}

// Search returns products whose name, brand, or category contains the query,
// case-insensitively. An empty or blank query returns nothing: no filter
// entered is not the same as matching everything.
func (c *Catalog) Search(query string) []domain.ProductWithPrices {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.ProductWithPrices
	for i := range c.products {
		p := &c.products[i]
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) {
			out = append(out, *p)
		}
	}
	return out
}

// SpecialsByStore returns products on special at the given store, in
// catalog order.
func (c *Catalog) SpecialsByStore(store domain.Store) []domain.ProductWithPrices {
	var out []domain.ProductWithPrices
	for i := range c.products {
		if c.products[i].OnSpecialAt(store) {
			out = append(out, c.products[i])
		}
	}
	return out
}

// AllSpecials returns the union of every store's specials, de-duplicated by
// product id, preserving first-seen order across the canonical store list.
func (c *Catalog) AllSpecials() []domain.ProductWithPrices {
	seen := make(map[string]struct{})
	var out []domain.ProductWithPrices
	for _, store := range domain.Stores {
		for _, p := range c.SpecialsByStore(store) {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Recipes returns all recipes in catalog order.
func (c *Catalog) Recipes() []domain.Recipe {
	return c.recipes
}

// Stores returns display metadata for all supported stores.
func (c *Catalog) Stores() []domain.StoreInfo {
	return storeInfos
}

// StoreInfo returns display metadata for a store, falling back to the first
// store for unknown names.
func (c *Catalog) StoreInfo(name domain.Store) domain.StoreInfo {
	for _, si := range storeInfos {
		if si.Name == name {
			return si
		}
	}
	return storeInfos[0]
}
