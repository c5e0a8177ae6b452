package main

import (
	"os"

	"github.com/wonny/topmonde/cmd/topmonde/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
