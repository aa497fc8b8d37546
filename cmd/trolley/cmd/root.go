// Package cmd implements the trolley CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/trolley-nz/trolley/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "trolley",
		Short: "CLI client for the Trolley API",
		Long: "trolley is a command-line client for the Trolley grocery price\n" +
			"comparison API. It lets you browse the catalog, find specials,\n" +
			"manage your shopping list and fridge, match recipes, and split\n" +
			"your list across stores for the cheapest trip.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.trolley.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(specialsCmd())
	rootCmd.AddCommand(storesCmd())
	rootCmd.AddCommand(recipesCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(fridgeCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".trolley")
	}

	viper.SetEnvPrefix("TROLLEY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
