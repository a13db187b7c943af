package main

import (
	"os"

	"github.com/aisola/levyt/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
