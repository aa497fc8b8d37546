package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ProductsResponse wraps a product list response.
type ProductsResponse struct {
	Products []domain.ProductWithPrices `json:"products"`
	Total    int                        `json:"total"`
}

// ListProducts returns the catalog, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, category string) (*ProductsResponse, error) {
	path := "/api/v1/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.ProductWithPrices, error) {
	var p domain.ProductWithPrices
	if err := c.get(ctx, fmt.Sprintf("/api/v1/products/%s", url.PathEscape(id)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchProducts returns products matching the search term.
func (c *Client) SearchProducts(ctx context.Context, query string) (*ProductsResponse, error) {
	path := "/api/v1/products/search?q=" + url.QueryEscape(query)

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSpecials returns products on special, optionally limited to one store.
func (c *Client) ListSpecials(ctx context.Context, store string) (*ProductsResponse, error) {
	path := "/api/v1/specials"
	if store != "" {
		path += "?store=" + url.QueryEscape(store)
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCategories returns the catalog's category names.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var resp struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/v1/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ListStores returns the supermarkets with display metadata.
func (c *Client) ListStores(ctx context.Context) ([]domain.StoreInfo, error) {
	var resp struct {
		Stores []domain.StoreInfo `json:"stores"`
	}
	if err := c.get(ctx, "/api/v1/stores", &resp); err != nil {
		return nil, err
	}
	return resp.Stores, nil
}

// RecipesResponse wraps a recipe list response.
type RecipesResponse struct {
	Recipes []domain.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

// ListRecipes returns all recipes.
func (c *Client) ListRecipes(ctx context.Context) (*RecipesResponse, error) {
	var resp RecipesResponse
	if err := c.get(ctx, "/api/v1/recipes", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchResult mirrors the matcher's per-recipe result.
type MatchResult struct {
	Recipe  domain.Recipe `json:"recipe"`
	Matched []string      `json:"matched"`
	Missing []string      `json:"missing"`
	Ratio   float64       `json:"ratio"`
}

// MatchesResponse wraps a recipe match response.
type MatchesResponse struct {
	Matches []MatchResult `json:"matches"`
	Total   int           `json:"total"`
}

// MatchRecipes returns recipes makeable from the given ingredients.
func (c *Client) MatchRecipes(
	ctx context.Context,
	available []string,
	maxCookTime int,
) (*MatchesResponse, error) {
	body := map[string]any{"available": available}
	if maxCookTime > 0 {
		body["max_cook_time"] = maxCookTime
	}

	var resp MatchesResponse
	if err := c.post(ctx, "/api/v1/recipes/match", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
