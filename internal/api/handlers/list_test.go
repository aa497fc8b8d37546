package handlers_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trolley-nz/trolley/internal/api/handlers"
	"github.com/trolley-nz/trolley/internal/catalog"
	"github.com/trolley-nz/trolley/internal/state"
	"github.com/trolley-nz/trolley/pkg/logger"
)

func newState(t *testing.T, cat *catalog.Catalog) *state.Store {
	t.Helper()

	st, err := state.NewStore(
		context.Background(),
		state.NewMemoryPersister(),
		cat,
		logger.NewWithWriter(io.Discard, "error", "text"),
	)
	require.NoError(t, err)
	return st
}

func newListAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	cat := newCatalog(t)
	h := handlers.NewListHandler(cat, newState(t, cat))

	_, api := humatest.New(t)
	handlers.RegisterListRoutes(api, h)
	return api
}

func TestList_AddAndGet(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	resp := api.Get("/api/v1/list")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)

	resp = api.Post("/api/v1/list/items", map[string]any{
		"product_id": "fv-001",
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.Contains(t, resp.Body.String(), `"quantity":2`)

	// Repeat add merges quantities.
	resp = api.Post("/api/v1/list/items", map[string]any{
		"product_id": "fv-001",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"quantity":3`)
}

func TestList_AddUnknownProduct(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	resp := api.Post("/api/v1/list/items", map[string]any{
		"product_id": "nope",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestList_UpdateQuantity(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	resp := api.Post("/api/v1/list/items", map[string]any{"product_id": "fv-001"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Put("/api/v1/list/items/fv-001", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"quantity":5`)

	// Zero removes the item.
	resp = api.Put("/api/v1/list/items/fv-001", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)

	// Now absent: 404.
	resp = api.Put("/api/v1/list/items/fv-001", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestList_ToggleAndRemove(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	resp := api.Post("/api/v1/list/items", map[string]any{"product_id": "de-001"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"checked":false`)

	resp = api.Post("/api/v1/list/items/de-001/toggle")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"checked":true`)

	resp = api.Delete("/api/v1/list/items/de-001")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)

	resp = api.Post("/api/v1/list/items/de-001/toggle")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Delete("/api/v1/list/items/de-001")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestList_Clear(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	resp := api.Post("/api/v1/list/items", map[string]any{"product_id": "fv-001"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = api.Post("/api/v1/list/items", map[string]any{"product_id": "de-001"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/v1/list")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)
}

func TestList_Optimize(t *testing.T) {
	t.Parallel()

	api := newListAPI(t)

	// Empty list optimizes to zero cost and no groups.
	resp := api.Get("/api/v1/list/optimize")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total_cost":0`)

	resp = api.Post("/api/v1/list/items", map[string]any{
		"product_id": "fv-001",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Bananas are cheapest at Pak'nSave ($1.99 special) against a $3.49
	// worst case at Woolworths.
	resp = api.Get("/api/v1/list/optimize")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"store":"Pak'nSave"`)
	assert.Contains(t, body, `"total_cost":1.99`)
	assert.Contains(t, body, `"worst_case_cost":3.49`)
	assert.Contains(t, body, `"total_savings":1.5`)
}
