package main

import (
	"os"

	"github.com/roeliffah/freestay-live-sub000/cmd/freestayctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
