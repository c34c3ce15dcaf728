package main

import (
	"os"

	"f1dash/cmd/f1dash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
