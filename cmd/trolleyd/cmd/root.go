// Package cmd implements the trolleyd server commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trolleyd",
	Short: "Grocery price comparison API server",
	Long: "An API-first service that compares grocery prices across Pak'nSave,\n" +
		"New World, and Woolworths, matches recipes against available\n" +
		"ingredients, and splits shopping lists across stores for the\n" +
		"cheapest total trip.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
