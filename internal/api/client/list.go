package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ListResponse wraps a shopping-list response.
type ListResponse struct {
	Items []domain.ShoppingListItem `json:"items"`
	Total int                       `json:"total"`
}

// GetList returns the current shopping list.
func (c *Client) GetList(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := c.get(ctx, "/api/v1/list", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddListItem adds a product to the shopping list.
func (c *Client) AddListItem(ctx context.Context, productID string, quantity int) (*ListResponse, error) {
	body := map[string]any{"product_id": productID}
	if quantity > 0 {
		body["quantity"] = quantity
	}

	var resp ListResponse
	if err := c.post(ctx, "/api/v1/list/items", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateListItem sets a list item's quantity. Zero removes the item.
func (c *Client) UpdateListItem(ctx context.Context, productID string, quantity int) (*ListResponse, error) {
	body := map[string]any{"quantity": quantity}

	var resp ListResponse
	path := fmt.Sprintf("/api/v1/list/items/%s", url.PathEscape(productID))
	if err := c.put(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleListItem flips a list item's checked state.
func (c *Client) ToggleListItem(ctx context.Context, productID string) (*ListResponse, error) {
	var resp ListResponse
	path := fmt.Sprintf("/api/v1/list/items/%s/toggle", url.PathEscape(productID))
	if err := c.post(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveListItem deletes a list item.
func (c *Client) RemoveListItem(ctx context.Context, productID string) (*ListResponse, error) {
	var resp ListResponse
	path := fmt.Sprintf("/api/v1/list/items/%s", url.PathEscape(productID))
	if err := c.del(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearList removes every item from the shopping list.
func (c *Client) ClearList(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := c.del(ctx, "/api/v1/list", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OptimizeList returns the cheapest-store partition of the shopping list.
func (c *Client) OptimizeList(ctx context.Context) (*domain.OptimizedList, error) {
	var resp domain.OptimizedList
	if err := c.get(ctx, "/api/v1/list/optimize", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
