package main

import (
	"os"

	"beerbot/cmd/beerbot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
