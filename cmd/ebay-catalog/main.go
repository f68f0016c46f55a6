package main

import (
	"os"

	"github.com/jbrahy/ebay-catalog/cmd/ebay-catalog/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
