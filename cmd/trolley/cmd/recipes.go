package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func recipesCmd() *cobra.Command {
	recipesRoot := &cobra.Command{
		Use:   "recipes",
		Short: "Browse and match recipes",
	}

	recipesRoot.AddCommand(
		recipesListCmd(),
		recipesMatchCmd(),
	)

	return recipesRoot
}

func recipesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recipes",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListRecipes(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printRecipesTable(resp.Recipes)
		},
	}
}

func recipesMatchCmd() *cobra.Command {
	var maxCookTime int

	cmd := &cobra.Command{
		Use:   "match <ingredient>...",
		Short: "Find recipes makeable from the given ingredients",
		Long: "Matches the given ingredient names against recipe ingredient\n" +
			"lists. A recipe qualifies when at least two of its ingredients\n" +
			"are covered; results are sorted best match first.",
		Example: `  trolley recipes match eggs milk cheese butter
  trolley recipes match eggs milk bread --max-cook-time 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.MatchRecipes(context.Background(), args, maxCookTime)
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
