package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/metrics"
	"github.com/trolley-nz/trolley/pkg/match"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// RecipesHandler handles recipe listing and matching endpoints.
type RecipesHandler struct {
	cat *catalog.Catalog
}

// NewRecipesHandler creates a new RecipesHandler.
func NewRecipesHandler(cat *catalog.Catalog) *RecipesHandler {
	return &RecipesHandler{cat: cat}
}

// ListRecipesOutput is the response for listing recipes.
type ListRecipesOutput struct {
	Body struct {
		Recipes []domain.Recipe `json:"recipes"`
		Total   int             `json:"total"`
	}
}

// MatchRecipesInput is the input for matching recipes against available
// ingredients.
type MatchRecipesInput struct {
	Body struct {
		Available   []string `json:"available" doc:"Ingredient names on hand"`
		MaxCookTime int      `json:"max_cook_time,omitempty" doc:"Maximum total cook time in minutes, 0 for no limit" minimum:"0"`
	}
}

// MatchRecipesOutput is the response for recipe matching.
type MatchRecipesOutput struct {
	Body struct {
		Matches []match.Result `json:"matches"`
		Total   int            `json:"total"`
	}
}

// ListRecipes returns all recipes.
func (h *RecipesHandler) ListRecipes(
	_ context.Context,
	_ *struct{},
) (*ListRecipesOutput, error) {
	recipes := h.cat.Recipes()

	resp := &ListRecipesOutput{}
	resp.Body.Recipes = recipes
	resp.Body.Total = len(recipes)
	return resp, nil
}

// MatchRecipes returns recipes makeable from the given ingredients, best
// match ratio first.
func (h *RecipesHandler) MatchRecipes(
	_ context.Context,
	input *MatchRecipesInput,
) (*MatchRecipesOutput, error) {
	results := match.Recipes(h.cat.Recipes(), input.Body.Available, input.Body.MaxCookTime)

	metrics.MatchRunsTotal.Inc()
	metrics.MatchResultsDistribution.Observe(float64(len(results)))

	resp := &MatchRecipesOutput{}
	resp.Body.Matches = results
	resp.Body.Total = len(results)
	return resp, nil
}

// RegisterRecipeRoutes registers recipe endpoints with the Huma API.
func RegisterRecipeRoutes(api huma.API, h *RecipesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-recipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Tags:        []string{"recipes"},
	}, h.ListRecipes)

	huma.Register(api, huma.Operation{
		OperationID: "match-recipes",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/match",
		Summary:     "Match recipes to ingredients",
		Description: "Returns recipes makeable from the given ingredients, ranked by match ratio.",
		Tags:        []string{"recipes"},
	}, h.MatchRecipes)
}
