package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/trolley-nz/trolley/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "Pantry", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProductsResponse{
			Products: []domain.ProductWithPrices{
				{Product: domain.Product{ID: "pa-001", Name: "Pasta Spirals"}},
			},
			Total: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListProducts(context.Background(), "Pantry")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "pa-001", resp.Products[0].ID)
}

func TestClient_SearchProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/search", r.URL.Path)
		assert.Equal(t, "banana", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProductsResponse{Total: 1})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.SearchProducts(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestClient_AddListItem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/list/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fv-001", body["product_id"])
		assert.EqualValues(t, 2, body["quantity"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListResponse{Total: 1})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.AddListItem(context.Background(), "fv-001", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestClient_RemoveListItem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/list/items/fv-001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListResponse{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.RemoveListItem(context.Background(), "fv-001")
	require.NoError(t, err)
}

func TestClient_OptimizeList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/list/optimize", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.OptimizedList{
			TotalCost:     1.99,
			WorstCaseCost: 3.49,
			TotalSavings:  1.50,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.OptimizeList(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.99, resp.TotalCost, 0.001)
	assert.InDelta(t, 1.50, resp.TotalSavings, 0.001)
}

func TestClient_FridgeFlow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/fridge/items":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Tomato", body["name"])
			json.NewEncoder(w).Encode(FridgeResponse{Items: []string{"tomato"}, Total: 1})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/fridge/items/tomato":
			json.NewEncoder(w).Encode(FridgeResponse{})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	resp, err := c.AddFridgeItem(context.Background(), "Tomato")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato"}, resp.Items)

	_, err = c.RemoveFridgeItem(context.Background(), "tomato")
	require.NoError(t, err)
}

func TestClient_MatchRecipes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/recipes/match", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 30, body["max_cook_time"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MatchesResponse{
			Matches: []MatchResult{{Ratio: 0.5}},
			Total:   1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.MatchRecipes(context.Background(), []string{"eggs", "milk"}, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.InDelta(t, 0.5, resp.Matches[0].Ratio, 0.001)
}

func TestClient_ScanBarcode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/scan/barcode", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ScannedProduct{
			Product: domain.ProductWithPrices{Product: domain.Product{ID: "fv-001"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ScanBarcode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fv-001", resp.Product.ID)
}
