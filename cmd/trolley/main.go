// Package main is the entry point for the trolley CLI client.
package main

import (
	"github.com/trolley-nz/trolley/cmd/trolley/cmd"
)

func main() {
	cmd.Execute()
}
