package main

import (
	"os"

	"github.com/dwkang/goalplanner/cmd/planner/commands"
)

// main is the entry point for the planner CLI: go run ./cmd/planner [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
