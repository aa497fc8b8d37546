package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

// FridgeResponse wraps a fridge contents response.
type FridgeResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// GetFridge returns the fridge ingredient names.
func (c *Client) GetFridge(ctx context.Context) (*FridgeResponse, error) {
	var resp FridgeResponse
	if err := c.get(ctx, "/api/v1/fridge", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddFridgeItem inserts an ingredient.
func (c *Client) AddFridgeItem(ctx context.Context, name string) (*FridgeResponse, error) {
	var resp FridgeResponse
	if err := c.post(ctx, "/api/v1/fridge/items", map[string]any{"name": name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveFridgeItem deletes an ingredient by name.
func (c *Client) RemoveFridgeItem(ctx context.Context, name string) (*FridgeResponse, error) {
	var resp FridgeResponse
	path := fmt.Sprintf("/api/v1/fridge/items/%s", url.PathEscape(name))
	if err := c.del(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetFridge replaces the fridge contents.
func (c *Client) SetFridge(ctx context.Context, items []string) (*FridgeResponse, error) {
	var resp FridgeResponse
	if err := c.put(ctx, "/api/v1/fridge", map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearFridge removes every ingredient.
func (c *Client) ClearFridge(ctx context.Context) (*FridgeResponse, error) {
	var resp FridgeResponse
	if err := c.del(ctx, "/api/v1/fridge", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FridgeRecipes returns recipe suggestions from the fridge contents.
func (c *Client) FridgeRecipes(ctx context.Context, maxCookTime int) (*MatchesResponse, error) {
	path := "/api/v1/fridge/recipes"
	if maxCookTime > 0 {
		path += "?max_cook_time=" + strconv.Itoa(maxCookTime)
	}

	var resp MatchesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScanFridgeResponse wraps a fridge scan response.
type ScanFridgeResponse struct {
	Detected []string `json:"detected"`
	Fridge   []string `json:"fridge"`
}

// ScanBarcode triggers a simulated barcode scan.
func (c *Client) ScanBarcode(ctx context.Context) (*domain.ScannedProduct, error) {
	var resp domain.ScannedProduct
	if err := c.post(ctx, "/api/v1/scan/barcode", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScanFridge triggers a simulated fridge scan, adding detections to the fridge.
func (c *Client) ScanFridge(ctx context.Context) (*ScanFridgeResponse, error) {
	var resp ScanFridgeResponse
	if err := c.post(ctx, "/api/v1/scan/fridge", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
