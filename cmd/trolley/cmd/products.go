package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		Long: "Browse the product catalog with per-store prices across\n" +
			"Pak'nSave, New World, and Woolworths.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsCategoriesCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by category",
		Example: `  trolley products list
  trolley products list --category "Dairy & Eggs"
  trolley products list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListProducts(context.Background(), category)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category filter")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show product details with per-store prices",
		Example: `  trolley products get fv-001`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(p)
		},
	}
}

func productsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			categories, err := c.ListCategories(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(categories)
			}
			for _, cat := range categories {
				fmt.Println(cat)
			}
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name, brand, or category",
		Example: `  trolley search banana
  trolley search "free range" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.SearchProducts(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			return printProductsTable(resp.Products)
		},
	}
}

func storesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List supported stores",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			stores, err := c.ListStores(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stores)
			}
			return printStoresTable(stores)
		},
	}
}

func specialsCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "specials",
		Short: "List products on special",
		Example: `  trolley specials
  trolley specials --store "Pak'nSave"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListSpecials(context.Background(), store)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Products) == 0 {
				fmt.Println("No specials found.")
				return nil
			}
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "store filter")

	return cmd
}
