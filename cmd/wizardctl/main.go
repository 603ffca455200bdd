package main

import (
	"os"

	"mortgage-portal/cmd/wizardctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
