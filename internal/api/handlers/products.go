package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/catalog"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ProductsHandler handles catalog query endpoints.
type ProductsHandler struct {
	cat *catalog.Catalog
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(cat *catalog.Catalog) *ProductsHandler {
	return &ProductsHandler{cat: cat}
}

// --- Input/Output types ---

// ListProductsInput is the input for listing products with an optional
// category filter.
type ListProductsInput struct {
	Category string `query:"category" doc:"Filter by category name"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.ProductWithPrices `json:"products"`
		Total    int                        `json:"total"`
	}
}

// GetProductInput is the input for getting a single product.
type GetProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

// GetProductOutput is the response for getting a single product.
type GetProductOutput struct {
	Body domain.ProductWithPrices
}

// SearchProductsInput is the input for product search.
type SearchProductsInput struct {
	Query string `query:"q" doc:"Search term matched against name, brand, and category"`
}

// ListCategoriesOutput is the response for listing categories.
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

// ListStoresOutput is the response for listing stores.
type ListStoresOutput struct {
	Body struct {
		Stores []domain.StoreInfo `json:"stores"`
	}
}

// --- Handlers ---

// ListProducts returns the full catalog, optionally filtered by category.
func (h *ProductsHandler) ListProducts(
	_ context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	var products []domain.ProductWithPrices
	if input.Category != "" {
		products = h.cat.ProductsByCategory(domain.Category(input.Category))
	} else {
		products = h.cat.Products()
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = len(products)
	return resp, nil
}

// GetProduct returns a single product with its per-store prices.
func (h *ProductsHandler) GetProduct(
	_ context.Context,
	input *GetProductInput,
) (*GetProductOutput, error) {
	product, ok := h.cat.ProductByID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("product not found")
	}
	return &GetProductOutput{Body: *product}, nil
}

// SearchProducts returns products whose name, brand, or category contains
// the search term. A blank term matches nothing.
func (h *ProductsHandler) SearchProducts(
	_ context.Context,
	input *SearchProductsInput,
) (*ListProductsOutput, error) {
	products := h.cat.Search(input.Query)

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = len(products)
	return resp, nil
}

// ListCategories returns the catalog's category names in display order.
func (h *ProductsHandler) ListCategories(
	_ context.Context,
	_ *struct{},
) (*ListCategoriesOutput, error) {
	resp := &ListCategoriesOutput{}
	resp.Body.Categories = domain.Categories
	return resp, nil
}

// ListStores returns the supermarkets with their display metadata.
func (h *ProductsHandler) ListStores(
	_ context.Context,
	_ *struct{},
) (*ListStoresOutput, error) {
	resp := &ListStoresOutput{}
	resp.Body.Stores = h.cat.Stores()
	return resp, nil
}

// RegisterProductRoutes registers catalog endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns the catalog with per-store prices, optionally filtered by category.",
		Tags:        []string{"catalog"},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/search",
		Summary:     "Search products",
		Description: "Returns products matching the search term by name, brand, or category.",
		Tags:        []string{"catalog"},
	}, h.SearchProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product by ID",
		Description: "Returns a single product with its per-store prices.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"catalog"},
	}, h.ListCategories)

	huma.Register(api, huma.Operation{
		OperationID: "list-stores",
		Method:      http.MethodGet,
		Path:        "/api/v1/stores",
		Summary:     "List stores",
		Description: "Returns the supported supermarkets with display metadata.",
		Tags:        []string{"catalog"},
	}, h.ListStores)
}
