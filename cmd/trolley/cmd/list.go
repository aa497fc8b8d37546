package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	listRoot := &cobra.Command{
		Use:   "list",
		Short: "Manage the shopping list",
		Long: "Manage the shopping list: add and remove products, adjust\n" +
			"quantities, tick items off, and split the list across stores\n" +
			"for the cheapest total trip.",
	}

	listRoot.AddCommand(
		listShowCmd(),
		listAddCmd(),
		listSetCmd(),
		listToggleCmd(),
		listRemoveCmd(),
		listClearCmd(),
		listOptimizeCmd(),
	)

	return listRoot
}

func listShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the shopping list",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetList(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Items) == 0 {
				fmt.Println("Shopping list is empty.")
				return nil
			}
			return printListTable(resp.Items)
		},
	}
}

func listAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the shopping list",
		Example: `  trolley list add fv-001
  trolley list add de-002 --quantity 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.AddListItem(context.Background(), args[0], quantity)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			fmt.Printf("Added %s. List has %d items.\n", args[0], resp.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity to add")

	return cmd
}

func listSetCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:     "set <product-id>",
		Short:   "Set an item's quantity (0 removes it)",
		Example: `  trolley list set fv-001 --quantity 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.UpdateListItem(context.Background(), args[0], quantity)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			fmt.Printf("Updated %s. List has %d items.\n", args[0], resp.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "new quantity")

	return cmd
}

func listToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <product-id>",
		Short:   "Toggle an item's checked state",
		Example: `  trolley list toggle fv-001`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.ToggleListItem(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printListTable(resp.Items)
		},
	}
}

func listRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <product-id>",
		Short:   "Remove an item from the shopping list",
		Example: `  trolley list remove fv-001`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.RemoveListItem(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			fmt.Printf("Removed %s. List has %d items.\n", args[0], resp.Total)
			return nil
		},
	}
}

func listClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the shopping list",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if _, err := c.ClearList(context.Background()); err != nil {
				return err
			}
			fmt.Println("Shopping list cleared.")
			return nil
		},
	}
}

func listOptimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Split the list across stores for the cheapest trip",
		Long: "Assigns each item to the store where it is cheapest, then shows\n" +
			"per-store subtotals, the combined total, and the savings against\n" +
			"buying everything at each item's most expensive store.",
		Example: `  trolley list optimize
  trolley list optimize --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			ol, err := c.OptimizeList(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ol)
			}
			if len(ol.Groups) == 0 {
				fmt.Println("Shopping list is empty.")
				return nil
			}
			return printOptimizedList(ol)
		},
	}
}
