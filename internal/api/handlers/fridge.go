package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	"github.com/trolley-nz/trolley/internal/state"
	"github.com/trolley-nz/trolley/pkg/match"
)

// FridgeHandler handles fridge ingredient endpoints.
type FridgeHandler struct {
	cat   *catalog.Catalog
	state *state.Store
}

// NewFridgeHandler creates a new FridgeHandler.
func NewFridgeHandler(cat *catalog.Catalog, st *state.Store) *FridgeHandler {
	return &FridgeHandler{cat: cat, state: st}
}

// --- Input/Output types ---

// FridgeOutput carries the current fridge contents.
type FridgeOutput struct {
	Body struct {
		Items []string `json:"items"`
		Total int      `json:"total"`
	}
}

// AddFridgeItemInput is the input for adding an ingredient.
type AddFridgeItemInput struct {
	Body struct {
		Name string `json:"name" doc:"Ingredient name"`
	}
}

// RemoveFridgeItemInput identifies an ingredient by name.
type RemoveFridgeItemInput struct {
	Name string `path:"name" doc:"Ingredient name"`
}

// SetFridgeInput replaces the fridge contents.
type SetFridgeInput struct {
	Body struct {
		Items []string `json:"items" doc:"Ingredient names"`
	}
}

// FridgeRecipesInput is the input for fridge-based recipe suggestions.
type FridgeRecipesInput struct {
	MaxCookTime int `query:"max_cook_time" doc:"Maximum total cook time in minutes, 0 for no limit" minimum:"0"`
}

// --- Handlers ---

// GetFridge returns the fridge ingredient names.
func (h *FridgeHandler) GetFridge(_ context.Context, _ *struct{}) (*FridgeOutput, error) {
	return h.fridgeResponse(), nil
}

// AddItem inserts an ingredient. Names are normalized so case and
// surrounding whitespace do not create duplicates.
func (h *FridgeHandler) AddItem(
	ctx context.Context,
	input *AddFridgeItemInput,
) (*FridgeOutput, error) {
	if strings.TrimSpace(input.Body.Name) == "" {
		return nil, huma.Error400BadRequest("ingredient name must not be blank")
	}

	if err := h.state.AddFridgeItem(ctx, input.Body.Name); err != nil {
		return nil, huma.Error500InternalServerError("adding ingredient failed: " + err.Error())
	}
	return h.fridgeResponse(), nil
}

// RemoveItem deletes an ingredient by name.
func (h *FridgeHandler) RemoveItem(
	ctx context.Context,
	input *RemoveFridgeItemInput,
) (*FridgeOutput, error) {
	if err := h.state.RemoveFridgeItem(ctx, input.Name); err != nil {
		return nil, huma.Error500InternalServerError("removing ingredient failed: " + err.Error())
	}
	return h.fridgeResponse(), nil
}

// SetFridge replaces the fridge contents wholesale.
func (h *FridgeHandler) SetFridge(
	ctx context.Context,
	input *SetFridgeInput,
) (*FridgeOutput, error) {
	if err := h.state.SetFridgeItems(ctx, input.Body.Items); err != nil {
		return nil, huma.Error500InternalServerError("setting fridge failed: " + err.Error())
	}
	return h.fridgeResponse(), nil
}

// ClearFridge removes every ingredient.
func (h *FridgeHandler) ClearFridge(ctx context.Context, _ *struct{}) (*FridgeOutput, error) {
	if err := h.state.ClearFridge(ctx); err != nil {
		return nil, huma.Error500InternalServerError("clearing fridge failed: " + err.Error())
	}
	return h.fridgeResponse(), nil
}

// SuggestRecipes matches recipes against the current fridge contents.
func (h *FridgeHandler) SuggestRecipes(
	_ context.Context,
	input *FridgeRecipesInput,
) (*MatchRecipesOutput, error) {
	results := match.Recipes(h.cat.Recipes(), h.state.FridgeItems(), input.MaxCookTime)

	metrics.MatchRunsTotal.Inc()
	metrics.MatchResultsDistribution.Observe(float64(len(results)))

	resp := &MatchRecipesOutput{}
	resp.Body.Matches = results
	resp.Body.Total = len(results)
	return resp, nil
}

func (h *FridgeHandler) fridgeResponse() *FridgeOutput {
	items := h.state.FridgeItems()

	resp := &FridgeOutput{}
	resp.Body.Items = items
	resp.Body.Total = len(items)
	return resp
}

// RegisterFridgeRoutes registers fridge endpoints with the Huma API.
func RegisterFridgeRoutes(api huma.API, h *FridgeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-fridge",
		Method:      http.MethodGet,
		Path:        "/api/v1/fridge",
		Summary:     "Get fridge contents",
		Tags:        []string{"fridge"},
	}, h.GetFridge)

	huma.Register(api, huma.Operation{
		OperationID: "set-fridge",
		Method:      http.MethodPut,
		Path:        "/api/v1/fridge",
		Summary:     "Replace fridge contents",
		Tags:        []string{"fridge"},
	}, h.SetFridge)

	huma.Register(api, huma.Operation{
		OperationID: "clear-fridge",
		Method:      http.MethodDelete,
		Path:        "/api/v1/fridge",
		Summary:     "Clear the fridge",
		Tags:        []string{"fridge"},
	}, h.ClearFridge)

	huma.Register(api, huma.Operation{
		OperationID: "add-fridge-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/fridge/items",
		Summary:     "Add a fridge ingredient",
		Tags:        []string{"fridge"},
		Errors:      []int{http.StatusBadRequest},
	}, h.AddItem)

	huma.Register(api, huma.Operation{
		OperationID: "remove-fridge-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/fridge/items/{name}",
		Summary:     "Remove a fridge ingredient",
		Tags:        []string{"fridge"},
	}, h.RemoveItem)

	huma.Register(api, huma.Operation{
		OperationID: "fridge-recipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/fridge/recipes",
		Summary:     "Suggest recipes from fridge contents",
		Description: "Returns recipes makeable from the fridge ingredients, ranked by match ratio.",
		Tags:        []string{"fridge", "recipes"},
	}, h.SuggestRecipes)
}
