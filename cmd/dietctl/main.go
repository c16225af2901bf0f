package main

import (
	"os"

	"pet-diet-planner/cmd/dietctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
