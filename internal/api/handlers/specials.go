package handlers

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/catalog"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// SpecialsHandler handles special-offer query endpoints.
type SpecialsHandler struct {
	cat *catalog.Catalog
}

// NewSpecialsHandler creates a new SpecialsHandler.
func NewSpecialsHandler(cat *catalog.Catalog) *SpecialsHandler {
	return &SpecialsHandler{cat: cat}
}

// ListSpecialsInput is the input for listing specials.
type ListSpecialsInput struct {
	Store string `query:"store" doc:"Limit to one store's specials"`
}

// ListSpecialsOutput is the response for listing specials.
type ListSpecialsOutput struct {
	Body struct {
		Products []domain.ProductWithPrices `json:"products"`
		Total    int                        `json:"total"`
	}
}

// ListSpecials returns products on special, across all stores or for one
// store when the store parameter is given.
func (h *SpecialsHandler) ListSpecials(
	_ context.Context,
	input *ListSpecialsInput,
) (*ListSpecialsOutput, error) {
	var products []domain.ProductWithPrices
	if input.Store != "" {
		store := domain.Store(input.Store)
		if !slices.Contains(domain.Stores, store) {
			return nil, huma.Error400BadRequest("unknown store: " + input.Store)
		}
		products = h.cat.SpecialsByStore(store)
	} else {
		products = h.cat.AllSpecials()
	}

	resp := &ListSpecialsOutput{}
	resp.Body.Products = products
	resp.Body.Total = len(products)
	return resp, nil
}

// RegisterSpecialsRoutes registers specials endpoints with the Huma API.
func RegisterSpecialsRoutes(api huma.API, h *SpecialsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-specials",
		Method:      http.MethodGet,
		Path:        "/api/v1/specials",
		Summary:     "List specials",
		Description: "Returns products currently on special, optionally limited to one store.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest},
	}, h.ListSpecials)
}
