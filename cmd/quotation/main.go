package main

import (
	"os"

	"github.com/tanakalajayanth/sairam-quotation/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
