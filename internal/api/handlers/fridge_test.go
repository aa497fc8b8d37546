package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trolley-nz/trolley/internal/api/handlers"
)

func newFridgeAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	cat := newCatalog(t)
	h := handlers.NewFridgeHandler(cat, newState(t, cat))

	_, api := humatest.New(t)
	handlers.RegisterFridgeRoutes(api, h)
	return api
}

func TestFridge_AddAndGet(t *testing.T) {
	t.Parallel()

	api := newFridgeAPI(t)

	resp := api.Get("/api/v1/fridge")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)

	resp = api.Post("/api/v1/fridge/items", map[string]any{"name": "  Tomato "})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"tomato"`)

	// Duplicate after normalization does not grow the fridge.
	resp = api.Post("/api/v1/fridge/items", map[string]any{"name": "TOMATO"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
}

func TestFridge_AddBlankName(t *testing.T) {
	t.Parallel()

	api := newFridgeAPI(t)

	resp := api.Post("/api/v1/fridge/items", map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestFridge_RemoveAndClear(t *testing.T) {
	t.Parallel()

	api := newFridgeAPI(t)

	resp := api.Post("/api/v1/fridge/items", map[string]any{"name": "milk"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = api.Post("/api/v1/fridge/items", map[string]any{"name": "eggs"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/v1/fridge/items/milk")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.NotContains(t, resp.Body.String(), `"milk"`)

	// Removing an absent ingredient is a no-op, not an error.
	resp = api.Delete("/api/v1/fridge/items/absent")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/v1/fridge")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)
}

func TestFridge_Set(t *testing.T) {
	t.Parallel()

	api := newFridgeAPI(t)

	resp := api.Put("/api/v1/fridge", map[string]any{
		"items": []string{"Milk", "milk", "Eggs"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"total":2`)
	assert.Contains(t, body, `"milk"`)
	assert.Contains(t, body, `"eggs"`)
}

func TestFridge_SuggestRecipes(t *testing.T) {
	t.Parallel()

	api := newFridgeAPI(t)

	// Empty fridge suggests nothing.
	resp := api.Get("/api/v1/fridge/recipes")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)

	resp = api.Put("/api/v1/fridge", map[string]any{
		"items": []string{"eggs", "milk", "cheese", "butter", "bread"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/fridge/recipes")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"matched"`)
	assert.Contains(t, body, `"ratio"`)
	assert.NotContains(t, body, `"total":0`)

	// A tight cook-time cap filters everything out.
	resp = api.Get("/api/v1/fridge/recipes?max_cook_time=1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)
}
