package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/trolley-nz/trolley/internal/scan"
	"github.com/trolley-nz/trolley/internal/state"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// ScanHandler handles simulated scan endpoints.
type ScanHandler struct {
	scanner *scan.Scanner
	state   *state.Store
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanner *scan.Scanner, st *state.Store) *ScanHandler {
	return &ScanHandler{scanner: scanner, state: st}
}

// ScanBarcodeOutput is the response for a barcode scan.
type ScanBarcodeOutput struct {
	Body domain.ScannedProduct
}

// ScanFridgeOutput is the response for a fridge photo scan.
type ScanFridgeOutput struct {
	Body struct {
		Detected []string `json:"detected"`
		Fridge   []string `json:"fridge"`
	}
}

// ScanBarcode simulates scanning a product barcode, returning the resolved
// product and cheaper same-category alternatives.
func (h *ScanHandler) ScanBarcode(
	ctx context.Context,
	_ *struct{},
) (*ScanBarcodeOutput, error) {
	scanned, err := h.scanner.Barcode(ctx)
	if err != nil {
		return nil, scanError(err)
	}
	return &ScanBarcodeOutput{Body: *scanned}, nil
}

// ScanFridge simulates photographing fridge contents. Detected ingredients
// are added to the fridge.
func (h *ScanHandler) ScanFridge(
	ctx context.Context,
	_ *struct{},
) (*ScanFridgeOutput, error) {
	detected, err := h.scanner.Fridge(ctx)
	if err != nil {
		return nil, scanError(err)
	}

	for _, name := range detected {
		if err := h.state.AddFridgeItem(ctx, name); err != nil {
			return nil, huma.Error500InternalServerError("saving fridge failed: " + err.Error())
		}
	}

	resp := &ScanFridgeOutput{}
	resp.Body.Detected = detected
	resp.Body.Fridge = h.state.FridgeItems()
	return resp, nil
}

func scanError(err error) error {
	if errors.Is(err, scan.ErrThrottled) {
		return huma.Error429TooManyRequests("scan rate limit exceeded")
	}
	return huma.Error500InternalServerError("scan failed: " + err.Error())
}

// RegisterScanRoutes registers scan endpoints with the Huma API.
func RegisterScanRoutes(api huma.API, h *ScanHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "scan-barcode",
		Method:      http.MethodPost,
		Path:        "/api/v1/scan/barcode",
		Summary:     "Scan a product barcode",
		Description: "Simulates a barcode scan, returning a product and cheaper same-category alternatives.",
		Tags:        []string{"scan"},
		Errors:      []int{http.StatusTooManyRequests},
	}, h.ScanBarcode)

	huma.Register(api, huma.Operation{
		OperationID: "scan-fridge",
		Method:      http.MethodPost,
		Path:        "/api/v1/scan/fridge",
		Summary:     "Scan fridge contents",
		Description: "Simulates a fridge photo scan and adds the detected ingredients to the fridge.",
		Tags:        []string{"scan", "fridge"},
		Errors:      []int{http.StatusTooManyRequests},
	}, h.ScanFridge)
}
