package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	"github.com/trolley-nz/trolley/internal/state"
	"github.com/trolley-nz/trolley/pkg/optimize"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ListHandler handles shopping-list endpoints.
type ListHandler struct {
	cat   *catalog.Catalog
	state *state.Store
}

// NewListHandler creates a new ListHandler.
func NewListHandler(cat *catalog.Catalog, st *state.Store) *ListHandler {
	return &ListHandler{cat: cat, state: st}
}

// --- Input/Output types ---

// ListOutput is the response carrying the current shopping list.
type ListOutput struct {
	Body struct {
		Items []domain.ShoppingListItem `json:"items"`
		Total int                       `json:"total"`
	}
}

// AddListItemInput is the input for adding a product to the list.
type AddListItemInput struct {
	Body struct {
		ProductID string `json:"product_id" doc:"Catalog product ID"`
		Quantity  int    `json:"quantity,omitempty" doc:"Units to add, defaults to 1" minimum:"0"`
	}
}

// UpdateListItemInput is the input for changing an item's quantity.
type UpdateListItemInput struct {
	ID   string `path:"id" doc:"Product ID of the list item"`
	Body struct {
		Quantity int `json:"quantity" doc:"New quantity; zero removes the item" minimum:"0"`
	}
}

// ListItemIDInput identifies a list item by product ID.
type ListItemIDInput struct {
	ID string `path:"id" doc:"Product ID of the list item"`
}

// OptimizeOutput is the response for cart optimization.
type OptimizeOutput struct {
	Body domain.OptimizedList
}

// --- Handlers ---

// GetList returns the current shopping list.
func (h *ListHandler) GetList(_ context.Context, _ *struct{}) (*ListOutput, error) {
	return h.listResponse(), nil
}

// AddItem adds a product to the shopping list, merging quantities when the
// product is already listed.
func (h *ListHandler) AddItem(
	ctx context.Context,
	input *AddListItemInput,
) (*ListOutput, error) {
	product, ok := h.cat.ProductByID(input.Body.ProductID)
	if !ok {
		return nil, huma.Error404NotFound("product not found")
	}

	if err := h.state.AddToList(ctx, *product, input.Body.Quantity); err != nil {
		return nil, huma.Error500InternalServerError("adding item failed: " + err.Error())
	}
	return h.listResponse(), nil
}

// UpdateItem sets a list item's quantity. A quantity of zero removes it.
func (h *ListHandler) UpdateItem(
	ctx context.Context,
	input *UpdateListItemInput,
) (*ListOutput, error) {
	if !h.itemExists(input.ID) {
		return nil, huma.Error404NotFound("list item not found")
	}

	if err := h.state.UpdateQuantity(ctx, input.ID, input.Body.Quantity); err != nil {
		return nil, huma.Error500InternalServerError("updating item failed: " + err.Error())
	}
	return h.listResponse(), nil
}

// ToggleItem flips a list item's checked flag.
func (h *ListHandler) ToggleItem(
	ctx context.Context,
	input *ListItemIDInput,
) (*ListOutput, error) {
	if !h.itemExists(input.ID) {
		return nil, huma.Error404NotFound("list item not found")
	}

	if err := h.state.ToggleChecked(ctx, input.ID); err != nil {
		return nil, huma.Error500InternalServerError("toggling item failed: " + err.Error())
	}
	return h.listResponse(), nil
}

// RemoveItem deletes a list item.
func (h *ListHandler) RemoveItem(
	ctx context.Context,
	input *ListItemIDInput,
) (*ListOutput, error) {
	if !h.itemExists(input.ID) {
		return nil, huma.Error404NotFound("list item not found")
	}

	if err := h.state.RemoveFromList(ctx, input.ID); err != nil {
		return nil, huma.Error500InternalServerError("removing item failed: " + err.Error())
	}
	return h.listResponse(), nil
}

// ClearList removes every item from the shopping list.
func (h *ListHandler) ClearList(ctx context.Context, _ *struct{}) (*ListOutput, error) {
	if err := h.state.ClearList(ctx); err != nil {
		return nil, huma.Error500InternalServerError("clearing list failed: " + err.Error())
	}
	return h.listResponse(), nil
}

// Optimize partitions the list by cheapest store and reports the total,
// worst case, and savings.
func (h *ListHandler) Optimize(_ context.Context, _ *struct{}) (*OptimizeOutput, error) {
	start := time.Now()

	result := optimize.Optimize(h.state.ShoppingList())

	metrics.OptimizeRunsTotal.Inc()
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	metrics.OptimizeSavings.Observe(result.TotalSavings)

	return &OptimizeOutput{Body: result}, nil
}

func (h *ListHandler) itemExists(id string) bool {
	return slices.ContainsFunc(h.state.ShoppingList(), func(item domain.ShoppingListItem) bool {
		return item.ID == id
	})
}

func (h *ListHandler) listResponse() *ListOutput {
	items := h.state.ShoppingList()

	resp := &ListOutput{}
	resp.Body.Items = items
	resp.Body.Total = len(items)
	return resp
}

// RegisterListRoutes registers shopping-list endpoints with the Huma API.
func RegisterListRoutes(api huma.API, h *ListHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/list",
		Summary:     "Get the shopping list",
		Tags:        []string{"list"},
	}, h.GetList)

	huma.Register(api, huma.Operation{
		OperationID: "clear-list",
		Method:      http.MethodDelete,
		Path:        "/api/v1/list",
		Summary:     "Clear the shopping list",
		Tags:        []string{"list"},
	}, h.ClearList)

	huma.Register(api, huma.Operation{
		OperationID: "add-list-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/list/items",
		Summary:     "Add a product to the list",
		Description: "Adds a product to the shopping list, merging quantities for repeat adds.",
		Tags:        []string{"list"},
		Errors:      []int{http.StatusNotFound},
	}, h.AddItem)

	huma.Register(api, huma.Operation{
		OperationID: "update-list-item",
		Method:      http.MethodPut,
		Path:        "/api/v1/list/items/{id}",
		Summary:     "Update a list item's quantity",
		Tags:        []string{"list"},
		Errors:      []int{http.StatusNotFound},
	}, h.UpdateItem)

	huma.Register(api, huma.Operation{
		OperationID: "toggle-list-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/list/items/{id}/toggle",
		Summary:     "Toggle a list item's checked state",
		Tags:        []string{"list"},
		Errors:      []int{http.StatusNotFound},
	}, h.ToggleItem)

	huma.Register(api, huma.Operation{
		OperationID: "remove-list-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/list/items/{id}",
		Summary:     "Remove a list item",
		Tags:        []string{"list"},
		Errors:      []int{http.StatusNotFound},
	}, h.RemoveItem)

	huma.Register(api, huma.Operation{
		OperationID: "optimize-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/list/optimize",
		Summary:     "Optimize the shopping list",
		Description: "Groups list items by their cheapest store and reports total cost and savings.",
		Tags:        []string{"list"},
	}, h.Optimize)
}
