package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	scanRoot := &cobra.Command{
		Use:   "scan",
		Short: "Run simulated scans",
		Long: "Trigger the server's simulated scanners: a barcode scan that\n" +
			"recognizes a product and suggests cheaper same-category\n" +
			"alternatives, and a fridge scan that detects ingredients.",
	}

	scanRoot.AddCommand(
		scanBarcodeCmd(),
		scanFridgeCmd(),
	)

	return scanRoot
}

func scanBarcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barcode",
		Short: "Simulate a barcode scan",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			scanned, err := c.ScanBarcode(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(scanned)
			}
			if err := printProductDetail(&scanned.Product); err != nil {
				return err
			}
			if len(scanned.Alternatives) > 0 {
				fmt.Println("\nAlternatives:")
				return printProductsTable(scanned.Alternatives)
			}
			return nil
		},
	}
}

func scanFridgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fridge",
		Short: "Simulate a fridge scan and add detections to the fridge",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ScanFridge(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			fmt.Printf("Detected: %s\n", strings.Join(resp.Detected, ", "))
			fmt.Printf("Fridge has %d items.\n", len(resp.Fridge))
			return nil
		},
	}
}
