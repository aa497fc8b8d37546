package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func fridgeCmd() *cobra.Command {
	fridgeRoot := &cobra.Command{
		Use:   "fridge",
		Short: "Manage fridge contents",
		Long: "Track the ingredients you have at home and find recipes you\n" +
			"can make with them.",
	}

	fridgeRoot.AddCommand(
		fridgeShowCmd(),
		fridgeAddCmd(),
		fridgeRemoveCmd(),
		fridgeSetCmd(),
		fridgeClearCmd(),
		fridgeRecipesCmd(),
	)

	return fridgeRoot
}

func fridgeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show fridge contents",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetFridge(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Items) == 0 {
				fmt.Println("Fridge is empty.")
				return nil
			}
			printFridgeItems(resp.Items)
			return nil
		},
	}
}

func fridgeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <ingredient>...",
		Short:   "Add ingredients to the fridge",
		Example: `  trolley fridge add eggs milk cheese`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			var total int
			for _, name := range args {
				resp, err := c.AddFridgeItem(context.Background(), name)
				if err != nil {
					return err
				}
				total = resp.Total
			}
			fmt.Printf("Fridge has %d items.\n", total)
			return nil
		},
	}
}

func fridgeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <ingredient>",
		Short:   "Remove an ingredient from the fridge",
		Example: `  trolley fridge remove milk`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.RemoveFridgeItem(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Fridge has %d items.\n", resp.Total)
			return nil
		},
	}
}

func fridgeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <ingredient>...",
		Short:   "Replace the fridge contents",
		Example: `  trolley fridge set eggs milk butter bread`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.SetFridge(context.Background(), args)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			printFridgeItems(resp.Items)
			return nil
		},
	}
}

func fridgeClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the fridge",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if _, err := c.ClearFridge(context.Background()); err != nil {
				return err
			}
			fmt.Println("Fridge cleared.")
			return nil
		},
	}
}

func fridgeRecipesCmd() *cobra.Command {
	var maxCookTime int

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Find recipes makeable from the fridge contents",
		Example: `  trolley fridge recipes
  trolley fridge recipes --max-cook-time 30`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.FridgeRecipes(context.Background(), maxCookTime)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Matches) == 0 {
				fmt.Println("No matching recipes.")
				return nil
			}
			return printMatchesTable(resp.Matches)
		},
	}
	cmd.Flags().IntVar(&maxCookTime, "max-cook-time", 0, "maximum cook time in minutes (0 = no limit)")

	return cmd
}
