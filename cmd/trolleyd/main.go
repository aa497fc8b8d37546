// Package main is the entry point for the trolleyd server.
package main

import (
	"os"

	"github.com/trolley-nz/trolley/cmd/trolleyd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
